package port

import (
	"context"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

type CatalogRepository interface {
	// ListProducts returns the catalog in display order
	ListProducts(ctx context.Context) ([]*domain.Product, error)

	// FindProduct looks a product up by name, domain.ErrProductNotFound if absent
	FindProduct(ctx context.Context, name string) (*domain.Product, error)
}
