package handler

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newTestClient(t *testing.T, balance int64) *POSClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterPOSServer(srv, NewGRPCHandler(newTestPOSService(t, balance)))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewPOSClient(conn)
}

func TestGRPC_Checkout(t *testing.T) {
	client := newTestClient(t, 1000)
	ctx := context.Background()

	resp, err := client.AddToCart(ctx, &AddToCartRequest{Product: "Mobile Scratch Card", Quantity: 2})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	resp, err = client.AddToCart(ctx, &AddToCartRequest{Product: "Fresh Milk", Quantity: 1})
	require.NoError(t, err)

	resp, err = client.Checkout(ctx, &CheckoutRequest{RequestID: "g-1"})
	require.NoError(t, err)
	require.NotNil(t, resp.Checkout)

	// 2x10 + 1x3, shipping 1kg x 1 x 2
	assert.True(t, resp.Checkout.Subtotal.Equal(decimal.NewFromInt(23)))
	assert.True(t, resp.Checkout.ShippingFee.Equal(decimal.NewFromInt(2)))
	assert.True(t, resp.Checkout.Balance.Equal(decimal.NewFromInt(975)))
	require.Len(t, resp.Checkout.Manifest, 1)
	assert.Equal(t, "Fresh Milk", resp.Checkout.Manifest[0].Name)
}

func TestGRPC_ErrorCodes(t *testing.T) {
	client := newTestClient(t, 1000)
	ctx := context.Background()

	_, err := client.Checkout(ctx, &CheckoutRequest{RequestID: "g-1"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = client.AddToCart(ctx, &AddToCartRequest{Product: "Caviar", Quantity: 1})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.AddToCart(ctx, &AddToCartRequest{Product: "iPhone", Quantity: -1})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "invalid quantity: iPhone", st.Message())
}

func TestGRPC_CheckoutRequiresRequestID(t *testing.T) {
	client := newTestClient(t, 1000)
	ctx := context.Background()

	_, err := client.AddToCart(ctx, &AddToCartRequest{Product: "iPhone", Quantity: 1})
	require.NoError(t, err)

	_, err = client.Checkout(ctx, &CheckoutRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	// The cart is still there for a retry with an ID.
	resp, err := client.Checkout(ctx, &CheckoutRequest{RequestID: "g-2"})
	require.NoError(t, err)
	assert.True(t, resp.Checkout.Total.Equal(decimal.NewFromInt(800)))
}

func TestListProductsDuringCheckout(t *testing.T) {
	pos := newTestPOSService(t, 100000)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if pos.AddToCart(ctx, "Mobile Scratch Card", 1) != nil {
				return
			}
			_, _ = pos.Checkout(ctx, fmt.Sprintf("r-%d", i))
			<-pos.GetReceiptQueue()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			products, err := pos.Products(ctx)
			if !assert.NoError(t, err) {
				return
			}
			for _, p := range products {
				_ = toProductView(p)
			}
		}
	}()
	wg.Wait()

	products, err := pos.Products(ctx)
	require.NoError(t, err)
	for _, p := range products {
		if p.Name() == "Mobile Scratch Card" {
			assert.Equal(t, 0, toProductView(p).Stock)
		}
	}
}
