package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lustraclean/vitrine/internal/cache"
	"github.com/lustraclean/vitrine/internal/catalog"
	"github.com/lustraclean/vitrine/internal/config"
	"github.com/lustraclean/vitrine/internal/event"
	"github.com/lustraclean/vitrine/internal/server"
	"github.com/lustraclean/vitrine/internal/source"
	"github.com/lustraclean/vitrine/internal/store"
	"github.com/lustraclean/vitrine/internal/version"
	"github.com/lustraclean/vitrine/pkg/fallback"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Vitrine catalog server starting")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// Open the shared SQLite store and the cache repository on top of it.
	db, err := store.New(cfg.GetString("storage.path"))
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	kv, err := cache.NewSQLiteStore(ctx, db)
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}

	// Record source: remote endpoint, degrading to the embedded fallback.
	sourceURL := cfg.GetString("catalog.source_url")
	if sourceURL == "" {
		logger.Warn("catalog.source_url is not set; every load will serve the fallback set")
	}
	src := source.NewHTTPSource(sourceURL, source.HTTPSourceOptions{
		Timeout:           cfg.GetDuration("catalog.fetch_timeout"),
		RequestsPerSecond: cfg.GetFloat64("catalog.rate_limit"),
	}, logger)

	records := catalog.NewRecordStore(src, kv, fallback.NewSet(), catalog.RecordStoreOptions{
		TTL: cfg.GetDuration("catalog.cache_ttl"),
	}, logger)

	bus := event.NewBus(logger)
	metrics := catalog.NewMetrics(prometheus.DefaultRegisterer)
	controller := catalog.NewController(records, bus, metrics, logger)

	// Warm the catalog so the first page render never waits on the source.
	snap := controller.Refresh(ctx, catalog.FilterSpec{})
	logger.Info("catalog warmed",
		zap.Int("total", snap.Total),
		zap.String("source", string(snap.Origin)),
	)

	// Create and start HTTP server
	addr := cfg.GetString("server.host") + ":" + cfg.GetString("server.port")
	srv := server.New(addr, logger, catalog.NewHandler(controller, logger))

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("Vitrine catalog server ready", zap.String("addr", addr))

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("Vitrine catalog server stopped")
}
