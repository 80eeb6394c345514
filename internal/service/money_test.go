package service

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSplitGross(t *testing.T) {
	gross, net, vat := splitGross(10, 110, 10)

	if !almostEqual(gross, 1100) {
		t.Errorf("gross = %v, want 1100", gross)
	}
	if !almostEqual(net, 1000) {
		t.Errorf("net = %v, want 1000", net)
	}
	if !almostEqual(vat, 100) {
		t.Errorf("vat = %v, want 100", vat)
	}
}

func TestSplitGrossZeroRate(t *testing.T) {
	gross, net, vat := splitGross(3, 50, 0)
	if !almostEqual(gross, 150) || !almostEqual(net, 150) || !almostEqual(vat, 0) {
		t.Errorf("zero-rate split = (%v, %v, %v), want (150, 150, 0)", gross, net, vat)
	}
}

func TestSplitGrossIdentity(t *testing.T) {
	cases := []struct {
		qty, price, rate float64
	}{
		{1, 100, 8},
		{7, 33.33, 10},
		{100, 50000, 10},
		{2.5, 1234.56, 5},
		{0, 999, 10},
	}

	for _, c := range cases {
		gross, net, vat := splitGross(c.qty, c.price, c.rate)
		if !almostEqual(gross, c.qty*c.price) {
			t.Errorf("splitGross(%v, %v, %v): gross = %v, want %v", c.qty, c.price, c.rate, gross, c.qty*c.price)
		}
		if !almostEqual(net+vat, gross) {
			t.Errorf("splitGross(%v, %v, %v): net+vat = %v, gross = %v", c.qty, c.price, c.rate, net+vat, gross)
		}
	}
}

func TestSplitGrossAggregation(t *testing.T) {
	// Line A: 5 x 100 @ 10%, line B: 2 x 50 @ 0%
	grossA, netA, vatA := splitGross(5, 100, 10)
	grossB, netB, vatB := splitGross(2, 50, 0)

	totalGross := grossA + grossB
	totalNet := netA + netB
	totalVAT := vatA + vatB

	if !almostEqual(totalGross, 600) {
		t.Errorf("total gross = %v, want 600", totalGross)
	}
	// netA = 500/1.1, netB = 100
	if !almostEqual(totalNet, 500.0/1.1+100) {
		t.Errorf("total net = %v, want %v", totalNet, 500.0/1.1+100)
	}
	if !almostEqual(totalVAT, 500-500.0/1.1) {
		t.Errorf("total vat = %v, want %v", totalVAT, 500-500.0/1.1)
	}
	if !almostEqual(totalNet+totalVAT, totalGross) {
		t.Errorf("net+vat = %v does not equal gross %v", totalNet+totalVAT, totalGross)
	}
}

func TestLineTotal(t *testing.T) {
	if got := lineTotal(100, 50000); got != 5000000 {
		t.Errorf("lineTotal(100, 50000) = %v, want 5000000", got)
	}
	if got := lineTotal(0, 50000); got != 0 {
		t.Errorf("lineTotal(0, 50000) = %v, want 0", got)
	}
}
