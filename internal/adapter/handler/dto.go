package handler

import (
	"github.com/shopspring/decimal"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

type ProductView struct {
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Stock     int              `json:"stock"`
	ExpiresOn string           `json:"expires_on,omitempty"`
	WeightKg  *decimal.Decimal `json:"weight_kg,omitempty"`
}

type CartLineView struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CartView struct {
	Lines   []CartLineView  `json:"lines"`
	Balance decimal.Decimal `json:"balance"`
}

type ManifestEntryView struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitGrams decimal.Decimal `json:"unit_grams"`
	LineKg    decimal.Decimal `json:"line_kg"`
}

type ReceiptLineView struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CheckoutView struct {
	ID            string              `json:"id"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	ShippingFee   decimal.Decimal     `json:"shipping_fee"`
	Total         decimal.Decimal     `json:"total"`
	Balance       decimal.Decimal     `json:"balance"`
	PackageWeight decimal.Decimal     `json:"package_weight_kg"`
	Manifest      []ManifestEntryView `json:"manifest"`
	Receipt       []ReceiptLineView   `json:"receipt"`
}

func toProductView(p *domain.Product) ProductView {
	v := ProductView{
		Name:  p.Name(),
		Price: p.UnitPrice(),
		Stock: p.StockQuantity(),
	}
	if d, ok := p.ExpirationDate(); ok {
		v.ExpiresOn = d.Format("2006-01-02")
	}
	if p.IsShippable() {
		w := p.Weight()
		v.WeightKg = &w
	}
	return v
}

func toCartView(lines []domain.CartLine, balance decimal.Decimal) CartView {
	v := CartView{Lines: make([]CartLineView, 0, len(lines)), Balance: balance}
	for _, l := range lines {
		v.Lines = append(v.Lines, CartLineView{Name: l.Product.Name(), Quantity: l.Quantity})
	}
	return v
}

func toCheckoutView(r domain.CheckoutResult) *CheckoutView {
	v := &CheckoutView{
		ID:            r.ID,
		Subtotal:      r.Subtotal,
		ShippingFee:   r.ShippingFee,
		Total:         r.Total,
		Balance:       r.Balance,
		PackageWeight: r.PackageWeight(),
		Manifest:      make([]ManifestEntryView, 0, len(r.Manifest)),
		Receipt:       make([]ReceiptLineView, 0, len(r.Receipt)),
	}
	for _, e := range r.Manifest {
		v.Manifest = append(v.Manifest, ManifestEntryView{
			Name:      e.Name,
			Quantity:  e.Quantity,
			UnitGrams: e.UnitGrams(),
			LineKg:    e.LineKilograms(),
		})
	}
	for _, l := range r.Receipt {
		v.Receipt = append(v.Receipt, ReceiptLineView{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return v
}
