package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/pos-checkout/internal/adapter/console"
	"github.com/rl1809/pos-checkout/internal/adapter/storage"
	"github.com/rl1809/pos-checkout/internal/config"
	"github.com/rl1809/pos-checkout/internal/core/service"
	"github.com/rl1809/pos-checkout/internal/logger"
)

func main() {
	cfg := config.Load()

	// Console output belongs to the session; keep the log quiet by default.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	log, err := logger.New(logger.Options{Service: "pos", Env: cfg.AppEnv, Level: level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	catalog, err := storage.DefaultCatalog(time.Now())
	if err != nil {
		log.Fatal("build catalog", zap.Error(err))
	}

	customer := service.NewCustomer(cfg.InitialBalance, service.NewCheckout(time.Now))
	pos := service.NewPOSService(catalog, customer, 1, service.WithLogger(log))
	defer pos.Close()

	if err := console.NewSession(pos, os.Stdin, os.Stdout).Run(context.Background()); err != nil {
		os.Exit(1)
	}
}
