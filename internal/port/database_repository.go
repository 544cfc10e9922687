package port

import (
	"context"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

type ReceiptRepository interface {
	// SaveReceipt archives a completed checkout with its receipt and manifest lines
	SaveReceipt(ctx context.Context, result domain.CheckoutResult) error

	// GetReceipt retrieves an archived checkout by ID, nil if unknown
	GetReceipt(ctx context.Context, id string) (*domain.CheckoutResult, error)
}
