package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

// MemoryCatalog keeps products in display order for the life of the process.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []*domain.Product
	byName   map[string]*domain.Product
}

func NewMemoryCatalog(products ...*domain.Product) (*MemoryCatalog, error) {
	c := &MemoryCatalog{byName: make(map[string]*domain.Product, len(products))}
	for _, p := range products {
		if _, exists := c.byName[p.Name()]; exists {
			return nil, fmt.Errorf("%w: duplicate name %q", domain.ErrInvalidProduct, p.Name())
		}
		c.byName[p.Name()] = p
		c.products = append(c.products, p)
	}
	return c, nil
}

func (c *MemoryCatalog) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]*domain.Product, len(c.products))
	copy(products, c.products)
	return products, nil
}

func (c *MemoryCatalog) FindProduct(ctx context.Context, name string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, name)
	}
	return p, nil
}

// DefaultCatalog is the store's fixed assortment, with expiry dates relative to start.
func DefaultCatalog(start time.Time) (*MemoryCatalog, error) {
	day := func(n int) time.Time { return start.AddDate(0, 0, n) }
	kg := decimal.RequireFromString

	seeds := []struct {
		name  string
		price string
		stock int
		opts  []domain.ProductOption
	}{
		{"Cheddar Cheese", "5", 10, []domain.ProductOption{domain.WithExpiration(day(5)), domain.WithWeight(kg("1.0"))}},
		{"Smart TV", "300", 2, []domain.ProductOption{domain.WithWeight(kg("10.0"))}},
		{"iPhone", "800", 5, nil},
		{"Mobile Scratch Card", "10", 20, nil},
		{"Chocolate Biscuits", "2", 15, []domain.ProductOption{domain.WithExpiration(day(3)), domain.WithWeight(kg("0.7"))}},
		{"Fresh Milk", "3", 20, []domain.ProductOption{domain.WithExpiration(day(7)), domain.WithWeight(kg("1.0"))}},
	}

	products := make([]*domain.Product, 0, len(seeds))
	for _, s := range seeds {
		p, err := domain.NewProduct(s.name, decimal.RequireFromString(s.price), s.stock, s.opts...)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return NewMemoryCatalog(products...)
}
