package service

// splitGross decomposes a VAT-inclusive line amount. unitPrice is gross:
// net is derived by dividing out the rate (gross-down), never by
// multiplying gross by (1 - rate).
//
//	gross = quantity * unitPrice
//	net   = gross / (1 + vatValue/100)
//	vat   = gross - net
func splitGross(quantity, unitPrice, vatValue float64) (gross, net, vat float64) {
	gross = quantity * unitPrice
	net = gross / (1 + vatValue/100)
	vat = gross - net
	return gross, net, vat
}

// lineTotal is the PYC line amount: quantity * unit price.
func lineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}
