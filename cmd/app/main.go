package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunhollow/farmstead/internal/config"
	"github.com/sunhollow/farmstead/internal/currency"
	"github.com/sunhollow/farmstead/internal/event"
	"github.com/sunhollow/farmstead/internal/inventory"
	"github.com/sunhollow/farmstead/internal/item"
	"github.com/sunhollow/farmstead/internal/metrics"
	"github.com/sunhollow/farmstead/internal/server"
	"github.com/sunhollow/farmstead/internal/shop"
	"github.com/sunhollow/farmstead/internal/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	itemConfig, err := item.Load(cfg.ItemsPath)
	if err != nil {
		log.Fatalf("Failed to load items: %v", err)
	}
	registry, err := item.NewRegistry(itemConfig)
	if err != nil {
		log.Fatalf("Failed to build item registry: %v", err)
	}
	slog.Info("Items loaded", "count", registry.Len(), "path", cfg.ItemsPath)

	catalogs, err := shop.LoadDir(cfg.CatalogsPath, registry)
	if err != nil {
		log.Fatalf("Failed to load shop catalogs: %v", err)
	}
	slog.Info("Catalogs loaded", "count", len(catalogs), "path", cfg.CatalogsPath)

	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		log.Fatalf("Failed to register metrics collector: %v", err)
	}

	store := inventory.NewStore(bus, nil, inventory.Options{
		QuickAccessSize: cfg.QuickAccessSize,
		GeneralSize:     cfg.GeneralSize,
		StackCapacity:   cfg.StackCapacity,
	})
	ledger := currency.NewLedger(bus, cfg.StartingGold)
	zone := world.NewDropZone(0)
	engine := shop.NewEngine(store, ledger, zone, bus)

	srv := server.NewServer(cfg.Port, server.Deps{
		Registry: registry,
		Store:    store,
		Ledger:   ledger,
		Engine:   engine,
		Zone:     zone,
		Catalogs: catalogs,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
