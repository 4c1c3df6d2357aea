package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mariodelgado/aquatrack-backend/api/routes"
	"github.com/mariodelgado/aquatrack-backend/internal/customers"
	"github.com/mariodelgado/aquatrack-backend/internal/hr"
	"github.com/mariodelgado/aquatrack-backend/internal/inventory"
	"github.com/mariodelgado/aquatrack-backend/internal/payments"
	"github.com/mariodelgado/aquatrack-backend/internal/production"
	"github.com/mariodelgado/aquatrack-backend/internal/recipes"
	"github.com/mariodelgado/aquatrack-backend/internal/sales"
	"github.com/mariodelgado/aquatrack-backend/internal/stats"
	"github.com/mariodelgado/aquatrack-backend/internal/store"
	"github.com/mariodelgado/aquatrack-backend/pkg/config"
	"github.com/mariodelgado/aquatrack-backend/pkg/kv"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
	"github.com/mariodelgado/aquatrack-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	kvs, err := newKVStore(context.Background(), cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap kv store", err)
		os.Exit(1)
	}
	defer func() {
		if err := kvs.Close(); err != nil {
			logg.Error(context.Background(), "error closing kv store", err)
		}
	}()

	st, err := store.Open(context.Background(), kvs, cfg.Store.Version, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open state store", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engineMetrics := metrics.NewEngineMetrics(registry)

	svcs, err := buildServices(st, engineMetrics, cfg.Store.LowStockThreshold)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, st, registry, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func newKVStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, error) {
	if cfg.Store.KVBackend == config.KVBackendRedis {
		return kv.NewRedis(ctx, cfg.Redis, logg)
	}
	return kv.NewGorm(ctx, cfg.DB, logg)
}

func buildServices(st *store.Store, em *metrics.EngineMetrics, lowStockThreshold int) (routes.Services, error) {
	inventorySvc, err := inventory.NewService(st, em, lowStockThreshold)
	if err != nil {
		return routes.Services{}, err
	}
	salesSvc, err := sales.NewService(st, em)
	if err != nil {
		return routes.Services{}, err
	}
	productionSvc, err := production.NewService(st, em)
	if err != nil {
		return routes.Services{}, err
	}
	recipeSvc, err := recipes.NewService(st, em)
	if err != nil {
		return routes.Services{}, err
	}
	customerSvc, err := customers.NewService(st, em)
	if err != nil {
		return routes.Services{}, err
	}
	paymentSvc, err := payments.NewService(st, em)
	if err != nil {
		return routes.Services{}, err
	}
	statsSvc, err := stats.NewService(st, lowStockThreshold)
	if err != nil {
		return routes.Services{}, err
	}
	hrSvc, err := hr.NewService(st, em)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Inventory:  inventorySvc,
		Sales:      salesSvc,
		Production: productionSvc,
		Recipes:    recipeSvc,
		Customers:  customerSvc,
		Payments:   paymentSvc,
		Stats:      statsSvc,
		HR:         hrSvc,
	}, nil
}
