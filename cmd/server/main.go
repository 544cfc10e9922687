package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/rl1809/pos-checkout/internal/adapter/handler"
	"github.com/rl1809/pos-checkout/internal/adapter/storage"
	"github.com/rl1809/pos-checkout/internal/config"
	"github.com/rl1809/pos-checkout/internal/core/service"
	"github.com/rl1809/pos-checkout/internal/logger"
	"github.com/rl1809/pos-checkout/internal/metrics"
	"github.com/rl1809/pos-checkout/internal/port"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Options{Service: "pos-server", Env: cfg.AppEnv, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalog, err := storage.DefaultCatalog(time.Now())
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	opts := []service.Option{service.WithLogger(log)}
	var receipts port.ReceiptRepository

	if cfg.StorageEnabled {
		// Initialize MySQL
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return fmt.Errorf("connect mysql: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping mysql: %w", err)
		}
		mysqlAdapter := storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
			return err
		}
		receipts = mysqlAdapter
		log.Info("connected to mysql")

		// Initialize Redis
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisAdapter := storage.NewRedisAdapter(rdb)
		opts = append(opts, service.WithCache(redisAdapter))
		log.Info("connected to redis")

		// Seed the stock mirror
		products, _ := catalog.ListProducts(ctx)
		for _, p := range products {
			if err := redisAdapter.SetStock(ctx, p.Name(), p.StockQuantity()); err != nil {
				return fmt.Errorf("seed stock: %w", err)
			}
		}
	}

	registry := prometheus.NewRegistry()
	opts = append(opts, service.WithMetrics(metrics.NewCheckoutMetrics(registry)))

	customer := service.NewCustomer(cfg.InitialBalance, service.NewCheckout(time.Now))
	posService := service.NewPOSService(catalog, customer, cfg.QueueSize, opts...)

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if receipts == nil {
				for range posService.GetReceiptQueue() {
				}
				return
			}
			service.ArchiveLoop(id, posService.GetReceiptQueue(), receipts, log)
		}(i)
	}
	log.Info("started workers", zap.Int("count", cfg.WorkerCount))

	// gRPC server
	grpcServer := grpc.NewServer()
	handler.RegisterPOSServer(grpcServer, handler.NewGRPCHandler(posService))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}

	// HTTP server
	httpHandler := handler.NewHTTPHandler(posService, receipts)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: httpHandler.Routes(metrics.Handler(registry)),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("gRPC server listening", zap.Int("port", cfg.GRPCPort))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		log.Info("HTTP server listening", zap.Int("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP shutdown", zap.Error(err))
		}
		log.Info("HTTP server stopped")

		healthServer.Shutdown()
		grpcServer.GracefulStop()
		log.Info("gRPC server stopped")
		return nil
	})

	err = g.Wait()

	// Close receipt queue and wait for workers
	posService.Close()
	wg.Wait()
	log.Info("workers stopped")

	return err
}
