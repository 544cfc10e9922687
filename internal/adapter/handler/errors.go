package handler

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"

	"github.com/rl1809/pos-checkout/internal/core/domain"
	"github.com/rl1809/pos-checkout/internal/core/service"
)

type errorMapping struct {
	err     error
	status  int
	code    codes.Code
	message string
}

var errorMappings = []errorMapping{
	{service.ErrDuplicateRequest, http.StatusConflict, codes.AlreadyExists, "duplicate request"},
	{domain.ErrProductNotFound, http.StatusNotFound, codes.NotFound, "product not found"},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, codes.InvalidArgument, "invalid quantity"},
	{domain.ErrEmptyCart, http.StatusBadRequest, codes.FailedPrecondition, "cart is empty"},
	{domain.ErrOutOfStock, http.StatusConflict, codes.FailedPrecondition, "out of stock"},
	{domain.ErrExpired, http.StatusGone, codes.FailedPrecondition, "product expired"},
	{domain.ErrInsufficientBalance, http.StatusPaymentRequired, codes.FailedPrecondition, "insufficient balance"},
}

// describeError maps a service error to a transport status and a user-facing
// message naming the offending product where there is one.
func describeError(err error) (int, codes.Code, string) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		var pe *domain.ProductError
		if errors.As(err, &pe) {
			return m.status, m.code, m.message + ": " + pe.Product
		}
		return m.status, m.code, m.message
	}
	return http.StatusInternalServerError, codes.Internal, "internal error"
}
