package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type CheckoutResult struct {
	ID          string
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Total       decimal.Decimal
	Balance     decimal.Decimal // remaining after the debit
	Manifest    []ManifestEntry
	Receipt     []ReceiptLine
	CompletedAt time.Time
}

func (r CheckoutResult) PackageWeight() decimal.Decimal {
	return TotalWeight(r.Manifest)
}
