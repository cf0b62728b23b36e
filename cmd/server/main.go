// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/cinerec/internal/api"
	"github.com/tomtom215/cinerec/internal/config"
	"github.com/tomtom215/cinerec/internal/dataset"
	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/metrics"
	"github.com/tomtom215/cinerec/internal/recommend"
	"github.com/tomtom215/cinerec/internal/supervisor"
	"github.com/tomtom215/cinerec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cacheSweepInterval is how often expired result cache entries are dropped.
const cacheSweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; config not yet available.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingConfig())
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	summary := logging.Info().Str("version", version)
	for k, v := range cfg.Summary() {
		summary = summary.Str(k, v)
	}
	summary.Msg("Starting cinerec")

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The engine is built only from a fully loaded dataset.
	engine, err := buildEngine(sigCtx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	handler := api.NewHandler(engine, version)
	mw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewRouter(handler, mw).Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	if cfg.Recommend.CacheEnabled {
		tree.AddMaintenanceService(services.NewCacheJanitorService(engine, cacheSweepInterval, logging.WithComponent("cache")))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	// The tree gets its own context so readiness flips before the server stops.
	treeCtx, cancelTree := context.WithCancel(context.Background())
	defer cancelTree()
	go func() {
		<-sigCtx.Done()
		logging.Info().Msg("Received shutdown signal")
		handler.Drain()
		cancelTree()
	}()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
	errCh := tree.ServeBackground(treeCtx)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
	if len(unstopped) > 0 {
		os.Exit(1)
	}
}

// buildEngine loads the dataset and builds the recommendation engine.
func buildEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	loader, err := dataset.NewLoader(cfg.Data.Backend, cfg.Sources(), logging.WithComponent("dataset"))
	if err != nil {
		return nil, err
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	return recommend.NewEngine(ds, cfg.EngineConfig(), logging.WithComponent("recommend"))
}
