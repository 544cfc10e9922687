package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/pos-checkout/internal/adapter/storage"
	"github.com/rl1809/pos-checkout/internal/core/domain"
	"github.com/rl1809/pos-checkout/internal/core/service"
)

func newSession(t *testing.T, balance int64, input string) (*Session, *bytes.Buffer) {
	t.Helper()
	start := time.Now()
	catalog, err := storage.DefaultCatalog(start)
	require.NoError(t, err)

	customer := service.NewCustomer(decimal.NewFromInt(balance), service.NewCheckout(func() time.Time { return start }))
	pos := service.NewPOSService(catalog, customer, 1)
	t.Cleanup(pos.Close)

	var out bytes.Buffer
	return NewSession(pos, strings.NewReader(input), &out), &out
}

func TestSession_ShopAndCheckout(t *testing.T) {
	// 3x Cheddar Cheese, 9 is invalid, 5 TVs exceeds stock, 1 TV, checkout
	s, out := newSession(t, 1000, "1 3 9 2 5 2 1 0")

	require.NoError(t, s.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "3 x Cheddar Cheese added to cart.")
	assert.Contains(t, text, "Invalid product number.")
	assert.Contains(t, text, "ERROR: Smart TV: out of stock")
	assert.Contains(t, text, "3x Cheddar Cheese 3000g")
	assert.Contains(t, text, "Total package weight 13.0kg")
	assert.Contains(t, text, "Amount 341")
	assert.Equal(t, 1, strings.Count(text, "** Shipment notice **"))
}

func TestSession_CheckoutFailure(t *testing.T) {
	s, out := newSession(t, 100, "2 1 0")

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Contains(t, out.String(), "ERROR: insufficient balance")
}

func TestSession_EndOfInputChecksOut(t *testing.T) {
	s, _ := newSession(t, 1000, "")

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}
