package service

import (
	"github.com/shopspring/decimal"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

type Customer struct {
	balance  decimal.Decimal
	cart     *domain.Cart
	checkout *Checkout
}

func NewCustomer(balance decimal.Decimal, checkout *Checkout) *Customer {
	return &Customer{
		balance:  balance,
		cart:     domain.NewCart(),
		checkout: checkout,
	}
}

func (c *Customer) AddToCart(product *domain.Product, quantity int) error {
	return c.cart.AddLine(product, quantity)
}

// Checkout debits the balance and empties the cart only when the run succeeds.
func (c *Customer) Checkout() (domain.CheckoutResult, error) {
	result, err := c.checkout.Run(c.cart, c.balance)
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	c.balance = result.Balance
	c.cart.Clear()
	return result, nil
}

func (c *Customer) Balance() decimal.Decimal {
	return c.balance
}

func (c *Customer) Cart() []domain.CartLine {
	return c.cart.Lines()
}
