package port

import "context"

type CacheRepository interface {
	// SetIdempotency sets a key for idempotency check, returns false if already exists
	SetIdempotency(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotency removes the key so a failed request can be retried
	ReleaseIdempotency(ctx context.Context, key string) error

	// SetStock mirrors the committed stock level of a product
	SetStock(ctx context.Context, productName string, quantity int) error
}
