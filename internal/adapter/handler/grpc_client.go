package handler

import (
	"context"

	"google.golang.org/grpc"
)

type POSClient struct {
	cc grpc.ClientConnInterface
}

func NewPOSClient(cc grpc.ClientConnInterface) *POSClient {
	return &POSClient{cc: cc}
}

func (c *POSClient) AddToCart(ctx context.Context, req *AddToCartRequest, opts ...grpc.CallOption) (*POSResponse, error) {
	out := new(POSResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+posServiceName+"/AddToCart", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *POSClient) Checkout(ctx context.Context, req *CheckoutRequest, opts ...grpc.CallOption) (*POSResponse, error) {
	out := new(POSResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+posServiceName+"/Checkout", req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
