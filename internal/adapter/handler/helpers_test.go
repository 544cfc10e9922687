package handler

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/pos-checkout/internal/adapter/storage"
	"github.com/rl1809/pos-checkout/internal/core/service"
)

func newTestPOSService(t *testing.T, balance int64) *service.POSService {
	t.Helper()

	start := time.Now()
	catalog, err := storage.DefaultCatalog(start)
	require.NoError(t, err)

	customer := service.NewCustomer(decimal.NewFromInt(balance), service.NewCheckout(func() time.Time { return start }))
	svc := service.NewPOSService(catalog, customer, 100)
	t.Cleanup(svc.Close)
	return svc
}
