package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/pos-checkout/internal/core/service"
)

const posServiceName = "pos.v1.CheckoutService"

type AddToCartRequest struct {
	Product  string `json:"product"`
	Quantity int32  `json:"quantity"`
}

type CheckoutRequest struct {
	RequestID string `json:"request_id"`
}

type POSResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message"`
	Checkout *CheckoutView `json:"checkout,omitempty"`
}

type POSServer interface {
	AddToCart(context.Context, *AddToCartRequest) (*POSResponse, error)
	Checkout(context.Context, *CheckoutRequest) (*POSResponse, error)
}

type GRPCHandler struct {
	posService *service.POSService
}

func NewGRPCHandler(posService *service.POSService) *GRPCHandler {
	return &GRPCHandler{posService: posService}
}

func (h *GRPCHandler) AddToCart(ctx context.Context, req *AddToCartRequest) (*POSResponse, error) {
	if err := h.posService.AddToCart(ctx, req.Product, int(req.Quantity)); err != nil {
		return nil, grpcError(err)
	}

	return &POSResponse{
		Success: true,
		Message: "added to cart",
	}, nil
}

func (h *GRPCHandler) Checkout(ctx context.Context, req *CheckoutRequest) (*POSResponse, error) {
	if req.RequestID == "" {
		return nil, status.Error(codes.InvalidArgument, "request_id is required")
	}

	result, err := h.posService.Checkout(ctx, req.RequestID)
	if err != nil {
		return nil, grpcError(err)
	}

	return &POSResponse{
		Success:  true,
		Message:  "checkout completed",
		Checkout: toCheckoutView(result),
	}, nil
}

func grpcError(err error) error {
	_, code, message := describeError(err)
	return status.Error(code, message)
}

func RegisterPOSServer(s grpc.ServiceRegistrar, srv POSServer) {
	s.RegisterService(&posServiceDesc, srv)
}

var posServiceDesc = grpc.ServiceDesc{
	ServiceName: posServiceName,
	HandlerType: (*POSServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddToCart", Handler: addToCartHandler},
		{MethodName: "Checkout", Handler: checkoutHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func addToCartHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddToCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).AddToCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + posServiceName + "/AddToCart"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).AddToCart(ctx, req.(*AddToCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func checkoutHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckoutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(POSServer).Checkout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + posServiceName + "/Checkout"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(POSServer).Checkout(ctx, req.(*CheckoutRequest))
	}
	return interceptor(ctx, in, info, handler)
}
