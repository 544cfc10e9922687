package storage

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rl1809/pos-checkout/internal/core/service"
)

type testEnv struct {
	redis   *redis.Client
	mysql   *sql.DB
	cache   *RedisAdapter
	db      *MySQLAdapter
	cleanup func()
}

func setupTestEnv(t *testing.T) *testEnv {
	rdb := getRedisClient(t)
	db := getMySQLDB(t)

	adapter := NewMySQLAdapter(db)
	require.NoError(t, adapter.EnsureSchema(context.Background()))

	return &testEnv{
		redis: rdb,
		mysql: db,
		cache: NewRedisAdapter(rdb),
		db:    adapter,
		cleanup: func() {
			rdb.Close()
			db.Close()
		},
	}
}

func TestIntegration_CheckoutIsArchivedAndMirrored(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	catalog, err := DefaultCatalog(time.Now())
	require.NoError(t, err)

	customer := service.NewCustomer(decimal.NewFromInt(1000), service.NewCheckout(time.Now))
	svc := service.NewPOSService(catalog, customer, 10, service.WithCache(env.cache))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			service.ArchiveLoop(id, svc.GetReceiptQueue(), env.db, zap.NewNop())
		}(i)
	}

	require.NoError(t, svc.AddToCart(ctx, "Cheddar Cheese", 3))
	require.NoError(t, svc.AddToCart(ctx, "Smart TV", 1))

	requestID := uuid.NewString()
	result, err := svc.Checkout(ctx, requestID)
	require.NoError(t, err)
	defer cleanupReceipt(ctx, env.mysql, result.ID)
	defer env.redis.Del(ctx, "checkout:"+requestID)

	svc.Close()
	wg.Wait()

	stored, err := env.db.GetReceipt(ctx, result.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Total.Equal(decimal.NewFromInt(341)))
	assert.Len(t, stored.Manifest, 2)

	stock, err := env.cache.GetStock(ctx, "Cheddar Cheese")
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestIntegration_IdempotencyPreventsDoubleCheckout(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	catalog, err := DefaultCatalog(time.Now())
	require.NoError(t, err)

	customer := service.NewCustomer(decimal.NewFromInt(1000), service.NewCheckout(time.Now))
	svc := service.NewPOSService(catalog, customer, 10, service.WithCache(env.cache))
	defer svc.Close()

	go func() {
		for range svc.GetReceiptQueue() {
		}
	}()

	requestID := "same-request-id-" + uuid.NewString()
	defer env.redis.Del(ctx, "checkout:"+requestID)

	require.NoError(t, svc.AddToCart(ctx, "iPhone", 1))
	_, err = svc.Checkout(ctx, requestID)
	require.NoError(t, err)

	require.NoError(t, svc.AddToCart(ctx, "iPhone", 1))
	_, err = svc.Checkout(ctx, requestID)
	assert.ErrorIs(t, err, service.ErrDuplicateRequest)

	_, balance := svc.Cart()
	assert.True(t, balance.Equal(decimal.NewFromInt(200)))
}
