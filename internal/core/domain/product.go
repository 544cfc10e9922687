package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Shippable is the view of a product the shipping manifest needs.
type Shippable interface {
	Name() string
	Weight() decimal.Decimal
}

// Product is a catalog entry. Expiration and weight are optional capabilities
// fixed at construction: a product expires only if it carries an expiration
// date and ships only if it carries a unit weight (kilograms). Stock is safe
// to read while a checkout reduces it.
type Product struct {
	name      string
	unitPrice decimal.Decimal

	mu    sync.RWMutex
	stock int

	expiresOn *time.Time
	weight    *decimal.Decimal
}

type ProductOption func(*Product)

// WithExpiration marks the product as expirable. Only the calendar date is kept.
func WithExpiration(date time.Time) ProductOption {
	return func(p *Product) {
		d := calendarDate(date)
		p.expiresOn = &d
	}
}

// WithWeight marks the product as shippable with the given unit weight in kg.
func WithWeight(kg decimal.Decimal) ProductOption {
	return func(p *Product) {
		w := kg
		p.weight = &w
	}
}

func NewProduct(name string, unitPrice decimal.Decimal, stock int, opts ...ProductOption) (*Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidProduct)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: %s has negative price", ErrInvalidProduct, name)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: %s has negative stock", ErrInvalidProduct, name)
	}

	p := &Product{
		name:      name,
		unitPrice: unitPrice,
		stock:     stock,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.weight != nil && p.weight.IsNegative() {
		return nil, fmt.Errorf("%w: %s has negative weight", ErrInvalidProduct, name)
	}

	return p, nil
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) UnitPrice() decimal.Decimal {
	return p.unitPrice
}

func (p *Product) StockQuantity() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stock
}

// ReduceStock removes n units. Stock never drops below zero.
func (p *Product) ReduceStock(n int) error {
	if n <= 0 {
		return productErr(p.name, ErrInvalidQuantity)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if n > p.stock {
		return productErr(p.name, ErrOutOfStock)
	}
	p.stock -= n
	return nil
}

func (p *Product) IsExpirable() bool {
	return p.expiresOn != nil
}

// ExpirationDate returns the expiration date and whether the product has one.
func (p *Product) ExpirationDate() (time.Time, bool) {
	if p.expiresOn == nil {
		return time.Time{}, false
	}
	return *p.expiresOn, true
}

// IsExpired reports whether the expiration date is strictly before the
// calendar date of now.
func (p *Product) IsExpired(now time.Time) bool {
	if p.expiresOn == nil {
		return false
	}
	return p.expiresOn.Before(calendarDate(now))
}

func (p *Product) IsShippable() bool {
	return p.weight != nil
}

// Weight returns the unit weight in kilograms, zero for non-shippable products.
func (p *Product) Weight() decimal.Decimal {
	if p.weight == nil {
		return decimal.Zero
	}
	return *p.weight
}

// AsShippable returns the shipping view when the product is shippable.
func (p *Product) AsShippable() (Shippable, bool) {
	if !p.IsShippable() {
		return nil, false
	}
	return p, true
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
