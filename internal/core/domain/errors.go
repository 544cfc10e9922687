package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrOutOfStock          = errors.New("out of stock")
	ErrExpired             = errors.New("product expired")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrProductNotFound     = errors.New("product not found")
)

// ProductError ties a failure to the product that caused it.
type ProductError struct {
	Product string
	Err     error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("%s: %v", e.Product, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

func productErr(name string, err error) error {
	return &ProductError{Product: name, Err: err}
}
