package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddLine(t *testing.T) {
	tv, _ := NewProduct("tv", decimal.NewFromInt(300), 2, WithWeight(decimal.NewFromInt(10)))
	mobile, _ := NewProduct("mobile", decimal.NewFromInt(800), 5)

	cart := NewCart()
	assert.True(t, cart.IsEmpty())

	require.NoError(t, cart.AddLine(tv, 2))
	require.NoError(t, cart.AddLine(mobile, 1))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "tv", lines[0].Product.Name())
	assert.Equal(t, "mobile", lines[1].Product.Name())

	// Adding never touches stock.
	assert.Equal(t, 2, tv.StockQuantity())
}

func TestCart_AddLine_Rejects(t *testing.T) {
	tv, _ := NewProduct("tv", decimal.NewFromInt(300), 2)
	cart := NewCart()

	assert.ErrorIs(t, cart.AddLine(tv, 3), ErrOutOfStock)
	assert.ErrorIs(t, cart.AddLine(tv, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddLine(tv, -1), ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCart_LinesIsACopy(t *testing.T) {
	tv, _ := NewProduct("tv", decimal.NewFromInt(300), 2)
	cart := NewCart()
	require.NoError(t, cart.AddLine(tv, 1))

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, cart.Lines()[0].Quantity)

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
}
