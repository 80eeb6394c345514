package entity

import "time"

// PaymentRequest đề nghị thanh toán (DNTT) — a payment voucher derived from
// one or more approved purchase requests. The ID is the document code:
// DNTT/<project>/<yyyy>/<mm>/<nnnn>.
type PaymentRequest struct {
	ID     string `json:"id" gorm:"primaryKey;size:64"`
	Status string `json:"status" gorm:"size:20;default:created;index"`

	RequestDate   *time.Time `json:"request_date"`
	PaymentReason string     `json:"payment_reason" gorm:"size:500"`

	SupplierName    string `json:"supplier_name" gorm:"size:200"`
	SupplierTaxCode string `json:"supplier_tax_code" gorm:"size:50"`

	PaymentTypeCode string `json:"payment_type_code" gorm:"size:20"` // bank_transfer/cash
	PaymentMethod   string `json:"payment_method" gorm:"size:100"`   // derived from PaymentTypeCode
	DocumentNumber  string `json:"document_number" gorm:"size:100"`
	PayerType       string `json:"payer_type" gorm:"size:50"`

	ExpenseTypeName  string `json:"expense_type_name" gorm:"size:200"`
	ExpenseGroupName string `json:"expense_group_name" gorm:"size:200"` // derived via expense category lookup
	ContractTypeCode string `json:"contract_type_code" gorm:"size:50"`

	Notes             string  `json:"notes" gorm:"type:text"`
	PYCClassification string  `json:"pyc_classification" gorm:"size:50"` // request_type of the first contributing PYC
	ProjectID         *string `json:"project_id" gorm:"size:32;index"`

	// Aggregates summed from line items; gross = net + vat within tolerance.
	TotalGross float64 `json:"total_gross" gorm:"type:decimal(18,2);default:0"`
	TotalNet   float64 `json:"total_net" gorm:"type:decimal(18,2);default:0"`
	VATAmount  float64 `json:"vat_amount" gorm:"type:decimal(18,2);default:0"`

	// Legacy single-line projection: populated only when the voucher holds
	// exactly one line; meaningless (nil) otherwise.
	Quantity     *float64 `json:"quantity" gorm:"type:decimal(12,2)"`
	UnitPrice    *float64 `json:"unit_price" gorm:"type:decimal(15,2)"`
	VATRate      *float64 `json:"vat_rate" gorm:"type:decimal(5,2)"`
	NetUnitPrice *float64 `json:"net_unit_price" gorm:"type:decimal(15,4)"`

	CreatedBy  string     `json:"created_by" gorm:"size:100"`
	Requester  string     `json:"requester" gorm:"size:100"`
	ApprovedBy *string    `json:"approved_by" gorm:"size:100"`
	ApprovedAt *time.Time `json:"approved_at"`

	StatusHistory StatusHistory `json:"status_history" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []PaymentLineItem `json:"items,omitempty" gorm:"foreignKey:PaymentRequestID;constraint:OnDelete:CASCADE"`
}

func (PaymentRequest) TableName() string {
	return "dntt_requests"
}

// DNTT status
const (
	DNTTStatusCreated  = "created"
	DNTTStatusPending  = "pending"
	DNTTStatusApproved = "approved"
	DNTTStatusRejected = "rejected"
)

// Payment type
const (
	PaymentTypeBankTransfer = "bank_transfer"
	PaymentTypeCash         = "cash"
)

// PaymentMethodFor maps a payment type code to its display method.
func PaymentMethodFor(typeCode string) string {
	switch typeCode {
	case PaymentTypeBankTransfer:
		return "Bank transfer"
	case PaymentTypeCash:
		return "Cash"
	default:
		return typeCode
	}
}

// PaymentLineItem one payable line on a DNTT, tagged with the purchase
// request it was derived from. The from-PYC flags record whether quantity
// and unit price were carried over unchanged or manually overridden during
// derivation.
type PaymentLineItem struct {
	ID               string `json:"id" gorm:"primaryKey;size:32"`
	PaymentRequestID string `json:"payment_request_id" gorm:"size:64;not null;index"`

	PYCRequestID string  `json:"pyc_request_id" gorm:"size:64;not null;index"`
	PYCTitle     string  `json:"pyc_title" gorm:"size:200"`
	ProjectID    *string `json:"project_id" gorm:"size:32"`

	ItemName string `json:"item_name" gorm:"size:200;not null"`
	Category string `json:"category" gorm:"size:100"`
	Unit     string `json:"unit" gorm:"size:20"`

	Quantity  float64 `json:"quantity" gorm:"type:decimal(12,2);default:0"`
	UnitPrice float64 `json:"unit_price" gorm:"type:decimal(15,2);default:0"` // VAT-inclusive
	VATValue  float64 `json:"vat_value" gorm:"type:decimal(5,2);default:0"`

	Gross     float64 `json:"gross" gorm:"type:decimal(18,2);default:0"`
	Net       float64 `json:"net" gorm:"type:decimal(18,4);default:0"`
	VATAmount float64 `json:"vat_amount" gorm:"type:decimal(18,4);default:0"`

	IsQtyFromPYC   bool `json:"is_qty_from_pyc" gorm:"default:true"`
	IsPriceFromPYC bool `json:"is_price_from_pyc" gorm:"default:true"`

	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentLineItem) TableName() string {
	return "dntt_line_items"
}
