package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

// ShippingRatePerKg is charged per kilogram of every shippable unit.
const ShippingRatePerKg int64 = 2

// Checkout prices and commits carts against the shared catalog. All lines are
// validated and priced before any stock moves, so a failed run mutates
// nothing. Runs are serialized because carts may share products.
type Checkout struct {
	mu  sync.Mutex
	now func() time.Time
}

func NewCheckout(now func() time.Time) *Checkout {
	if now == nil {
		now = time.Now
	}
	return &Checkout{now: now}
}

func (c *Checkout) Run(cart *domain.Cart, balance decimal.Decimal) (domain.CheckoutResult, error) {
	if cart.IsEmpty() {
		return domain.CheckoutResult{}, domain.ErrEmptyCart
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	lines := cart.Lines()

	subtotal := decimal.Zero
	shippingFee := decimal.Zero
	receipt := make([]domain.ReceiptLine, 0, len(lines))
	demand := make(map[*domain.Product]int, len(lines))
	var shipping domain.ShippingAccumulator

	for _, line := range lines {
		p := line.Product

		if p.IsExpired(now) {
			return domain.CheckoutResult{}, &domain.ProductError{Product: p.Name(), Err: domain.ErrExpired}
		}

		// Lines for the same product draw from one stock level.
		demand[p] += line.Quantity
		if demand[p] > p.StockQuantity() {
			return domain.CheckoutResult{}, &domain.ProductError{Product: p.Name(), Err: domain.ErrOutOfStock}
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		lineTotal := p.UnitPrice().Mul(qty)
		subtotal = subtotal.Add(lineTotal)
		receipt = append(receipt, domain.ReceiptLine{
			Name:      p.Name(),
			Quantity:  line.Quantity,
			UnitPrice: p.UnitPrice(),
			LineTotal: lineTotal,
		})

		if item, ok := p.AsShippable(); ok {
			shippingFee = shippingFee.Add(item.Weight().Mul(qty).Mul(decimal.NewFromInt(ShippingRatePerKg)))
			shipping.Add(item, line.Quantity)
		}
	}

	total := subtotal.Add(shippingFee)
	if total.GreaterThan(balance) {
		return domain.CheckoutResult{}, fmt.Errorf("%w: total %s, balance %s",
			domain.ErrInsufficientBalance, total.StringFixed(2), balance.StringFixed(2))
	}

	for _, line := range lines {
		if err := line.Product.ReduceStock(line.Quantity); err != nil {
			return domain.CheckoutResult{}, fmt.Errorf("commit stock: %w", err)
		}
	}

	return domain.CheckoutResult{
		ID:          uuid.NewString(),
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       total,
		Balance:     balance.Sub(total),
		Manifest:    shipping.Entries(),
		Receipt:     receipt,
		CompletedAt: now,
	}, nil
}
