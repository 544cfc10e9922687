package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/pos-checkout/internal/core/domain"
	"github.com/rl1809/pos-checkout/internal/port"
)

const (
	archiveAttempts = 3
	archiveTimeout  = 5 * time.Second
)

var archiveBackoff = 200 * time.Millisecond

// ArchiveLoop drains completed checkouts into the receipt repository until the
// queue is closed. The checkout has already been committed, so a receipt that
// cannot be written after retries is logged and dropped.
func ArchiveLoop(id int, queue <-chan domain.CheckoutResult, repo port.ReceiptRepository, logger *zap.Logger) {
	for result := range queue {
		var err error
		for attempt := 1; attempt <= archiveAttempts; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
			err = repo.SaveReceipt(ctx, result)
			cancel()
			if err == nil {
				break
			}
			logger.Warn("save receipt failed",
				zap.Int("worker", id),
				zap.String("checkout_id", result.ID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if attempt < archiveAttempts {
				time.Sleep(archiveBackoff * time.Duration(attempt))
			}
		}

		if err != nil {
			logger.Error("receipt not archived",
				zap.Int("worker", id),
				zap.String("checkout_id", result.ID),
				zap.Error(err))
			continue
		}
		logger.Debug("receipt archived", zap.Int("worker", id), zap.String("checkout_id", result.ID))
	}
}
