package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/amara-labs/zawadi-backend/api/controllers"
	cartcontrollers "github.com/amara-labs/zawadi-backend/api/controllers/cart"
	"github.com/amara-labs/zawadi-backend/api/routes"
	"github.com/amara-labs/zawadi-backend/internal/cart"
	"github.com/amara-labs/zawadi-backend/internal/catalog"
	"github.com/amara-labs/zawadi-backend/internal/checkout"
	"github.com/amara-labs/zawadi-backend/internal/orders"
	"github.com/amara-labs/zawadi-backend/pkg/config"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
	"github.com/amara-labs/zawadi-backend/pkg/metrics"
	"github.com/amara-labs/zawadi-backend/pkg/storage/kv"
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

	snapshotStore, err := kv.NewStore(context.Background(), cfg.Snapshot, cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap snapshot store", err)
		os.Exit(1)
	}
	defer func() {
		if err := snapshotStore.Close(); err != nil {
			logg.Error(context.Background(), "error closing snapshot store", err)
		}
	}()

	var snapshotPinger controllers.Pinger
	if p, ok := snapshotStore.(controllers.Pinger); ok {
		snapshotPinger = p
	}

	limits := cart.LimitsFromConfig(cfg.Cart)

	snapshots, err := cart.NewSnapshots(snapshotStore, cfg.Snapshot, limits, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create snapshot layer", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	manager, err := cart.NewManager(snapshots, limits, logg, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	var catalogClient *catalog.Client
	if cfg.Catalog.BaseURL != "" {
		catalogClient, err = catalog.NewClient(cfg.Catalog.BaseURL, catalog.WithTimeout(cfg.Catalog.Timeout))
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog client", err)
			os.Exit(1)
		}
	}

	ordersClient, err := orders.NewClient(cfg.Orders.BaseURL, orders.WithTimeout(cfg.Orders.Timeout))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders client", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(manager, ordersClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":              cfg.App.Env,
		"addr":             addr,
		"snapshot_backend": cfg.Snapshot.Backend,
	})
	logg.Info(ctx, "starting cart api server")

	var products cartcontrollers.ProductLookup
	if catalogClient != nil {
		products = catalogClient
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, manager, products, checkoutService, snapshotPinger, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "cart api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
