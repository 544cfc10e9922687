package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/pos-checkout/internal/adapter/storage"
	"github.com/rl1809/pos-checkout/internal/core/service"
)

const (
	redisAddr        = "localhost:6379"
	productName      = "Mobile Scratch Card"
	rounds           = 10
	requestsPerRound = 50
	queueSize        = 100
)

func main() {
	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	catalog, err := storage.DefaultCatalog(time.Now())
	if err != nil {
		log.Fatalf("failed to build catalog: %v", err)
	}

	redisAdapter := storage.NewRedisAdapter(rdb)
	customer := service.NewCustomer(decimal.NewFromInt(1000), service.NewCheckout(time.Now))
	posService := service.NewPOSService(catalog, customer, queueSize, service.WithCache(redisAdapter))
	defer posService.Close()

	// Drain the receipt queue in background
	go func() {
		for range posService.GetReceiptQueue() {
		}
	}()

	// Counters
	var successCount atomic.Int32
	var duplicateCount atomic.Int32
	var failCount atomic.Int32

	runID := uuid.NewString()
	start := time.Now()

	for round := 0; round < rounds; round++ {
		if err := posService.AddToCart(ctx, productName, 1); err != nil {
			log.Fatalf("round %d: add to cart: %v", round, err)
		}

		requestID := fmt.Sprintf("stress-%s-%d", runID, round)

		// Spawn concurrent retries of the same checkout
		var wg sync.WaitGroup
		for i := 0; i < requestsPerRound; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := posService.Checkout(ctx, requestID)
				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, service.ErrDuplicateRequest):
					duplicateCount.Add(1)
				default:
					failCount.Add(1)
				}
			}()
		}
		wg.Wait()

		rdb.Del(ctx, "checkout:"+requestID)
	}
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	duplicate := duplicateCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Rounds:           %d\n", rounds)
	fmt.Printf("Total Requests:   %d\n", rounds*requestsPerRound)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Duplicates:       %d\n", duplicate)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	// Assertions
	if success == rounds && fail == 0 {
		fmt.Printf("PASS: Exactly %d checkouts succeeded\n", rounds)
	} else {
		fmt.Printf("FAIL: Expected %d success/0 fail, got %d/%d\n", rounds, success, fail)
	}

	// Verify the stock mirror
	finalStock, _ := redisAdapter.GetStock(ctx, productName)
	fmt.Printf("Final Redis Stock: %d\n", finalStock)

	if finalStock == 20-rounds {
		fmt.Println("PASS: Stock decremented once per round")
	} else {
		fmt.Printf("FAIL: Expected stock %d, got %d\n", 20-rounds, finalStock)
	}

	_, balance := posService.Cart()
	fmt.Printf("Remaining balance: %s\n", balance.StringFixed(2))
}
