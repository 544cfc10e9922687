package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rl1809/pos-checkout/internal/core/domain"
	"github.com/rl1809/pos-checkout/internal/metrics"
	"github.com/rl1809/pos-checkout/internal/port"
)

var ErrDuplicateRequest = errors.New("duplicate request")

// POSService runs one customer session over the catalog. Completed checkouts
// are pushed onto a queue for archiving.
type POSService struct {
	catalog      port.CatalogRepository
	cache        port.CacheRepository
	metrics      *metrics.CheckoutMetrics
	logger       *zap.Logger
	receiptQueue chan domain.CheckoutResult

	mu       sync.Mutex
	customer *Customer
}

type Option func(*POSService)

// WithCache enables idempotent checkout requests and the stock mirror.
func WithCache(cache port.CacheRepository) Option {
	return func(s *POSService) { s.cache = cache }
}

func WithMetrics(m *metrics.CheckoutMetrics) Option {
	return func(s *POSService) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *POSService) { s.logger = l }
}

func NewPOSService(catalog port.CatalogRepository, customer *Customer, queueSize int, opts ...Option) *POSService {
	s := &POSService{
		catalog:      catalog,
		customer:     customer,
		logger:       zap.NewNop(),
		receiptQueue: make(chan domain.CheckoutResult, queueSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *POSService) Products(ctx context.Context) ([]*domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *POSService) AddToCart(ctx context.Context, productName string, quantity int) error {
	product, err := s.catalog.FindProduct(ctx, productName)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.customer.AddToCart(product, quantity); err != nil {
		return err
	}

	s.logger.Debug("added to cart",
		zap.String("product", productName),
		zap.Int("quantity", quantity))
	return nil
}

func (s *POSService) Cart() ([]domain.CartLine, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.customer.Cart(), s.customer.Balance()
}

func (s *POSService) Checkout(ctx context.Context, requestID string) (domain.CheckoutResult, error) {
	idempotencyKey := "checkout:" + requestID

	if s.cache != nil && requestID != "" {
		ok, err := s.cache.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			return domain.CheckoutResult{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			s.metrics.Observe(outcome(ErrDuplicateRequest), decimal.Zero)
			return domain.CheckoutResult{}, ErrDuplicateRequest
		}
	}

	s.mu.Lock()
	lines := s.customer.Cart()
	result, err := s.customer.Checkout()
	stock := make(map[string]int, len(lines))
	if err == nil {
		for _, line := range lines {
			stock[line.Product.Name()] = line.Product.StockQuantity()
		}
	}
	s.mu.Unlock()

	s.metrics.Observe(outcome(err), result.Total)

	if err != nil {
		s.logger.Info("checkout rejected", zap.String("request_id", requestID), zap.Error(err))
		if s.cache != nil && requestID != "" {
			if relErr := s.cache.ReleaseIdempotency(ctx, idempotencyKey); relErr != nil {
				s.logger.Warn("release idempotency key failed",
					zap.String("request_id", requestID), zap.Error(relErr))
			}
		}
		return domain.CheckoutResult{}, err
	}

	if s.cache != nil {
		for name, qty := range stock {
			if err := s.cache.SetStock(ctx, name, qty); err != nil {
				s.logger.Warn("stock mirror update failed", zap.String("product", name), zap.Error(err))
			}
		}
	}

	select {
	case s.receiptQueue <- result:
	default:
		s.logger.Warn("receipt queue full, receipt not archived",
			zap.String("request_id", requestID),
			zap.String("checkout_id", result.ID))
	}

	s.logger.Info("checkout completed",
		zap.String("request_id", requestID),
		zap.String("checkout_id", result.ID),
		zap.String("total", result.Total.StringFixed(2)),
		zap.String("balance", result.Balance.StringFixed(2)))
	return result, nil
}

func (s *POSService) GetReceiptQueue() <-chan domain.CheckoutResult {
	return s.receiptQueue
}

func (s *POSService) Close() {
	close(s.receiptQueue)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrDuplicateRequest):
		return "duplicate"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrExpired):
		return "expired"
	case errors.Is(err, domain.ErrOutOfStock):
		return "out_of_stock"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	default:
		return "error"
	}
}
