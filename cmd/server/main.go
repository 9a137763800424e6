// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/hurakan/feelgive-sub000/docs"
	"github.com/hurakan/feelgive-sub000/internal/api"
	"github.com/hurakan/feelgive-sub000/internal/auth"
	"github.com/hurakan/feelgive-sub000/internal/cache"
	"github.com/hurakan/feelgive-sub000/internal/config"
	"github.com/hurakan/feelgive-sub000/internal/directory"
	"github.com/hurakan/feelgive-sub000/internal/logging"
	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/recommend"
	"github.com/hurakan/feelgive-sub000/internal/supervisor"
	"github.com/hurakan/feelgive-sub000/internal/supervisor/services"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("go_version", runtime.Version()).
		Msg("Starting FeelGive recommendation server")

	startTime := time.Now()
	metrics.SetAppInfo(version, runtime.Version())
	metrics.SetUptime(startTime)

	// Cache store: four in-memory namespaces plus the optional Badger
	// details tier. A Badger open failure degrades to memory-only inside
	// NewStore rather than failing startup.
	store := cache.NewStore(cache.Config{
		SearchTTL:         cfg.Cache.SearchTTL,
		BrowseTTL:         cfg.Cache.BrowseTTL,
		DetailsTTL:        cfg.Cache.DetailsTTL,
		RecommendationTTL: cfg.Cache.RecommendationTTL,
		BadgerEnabled:     cfg.Cache.BadgerEnabled,
		BadgerPath:        cfg.Cache.BadgerPath,
	}, logging.WithComponent("cache"))
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close cache store")
		}
	}()

	// Directory provider, layered inside-out: HTTP client with retries
	// and outbound pacing, then the circuit breaker, then the read-through
	// cache. The engine only ever sees the outermost layer.
	baseClient := directory.NewClient(directory.Config{
		BaseURL:        cfg.Directory.BaseURL,
		APIKey:         cfg.Directory.APIKey,
		Timeout:        cfg.Directory.Timeout,
		MaxRetries:     cfg.Directory.MaxRetries,
		RetryBaseDelay: cfg.Directory.RetryBaseDelay,
		RateLimitRPS:   cfg.Directory.RateLimitRPS,
		RateLimitBurst: cfg.Directory.RateLimitBurst,
	}, logging.WithComponent("directory"))

	var provider directory.API = baseClient
	var breaker *directory.BreakerClient
	if cfg.Directory.BreakerEnabled {
		breaker = directory.NewBreakerClient(provider, logging.WithComponent("breaker"))
		provider = breaker
	}
	provider = directory.NewCachedClient(provider, store, logging.WithComponent("directory-cache"))

	engineCfg := recommend.DefaultConfig()
	if cfg.Engine.TopN > 0 {
		engineCfg.Limits.DefaultTopN = cfg.Engine.TopN
		engineCfg.Limits.MaxTopN = cfg.Engine.TopN
	}
	if cfg.Engine.EnrichTopK > 0 {
		engineCfg.Enrich.TopK = cfg.Engine.EnrichTopK
	}
	if cfg.Engine.RequestDeadline > 0 {
		engineCfg.Limits.RequestDeadline = cfg.Engine.RequestDeadline
	}
	if cfg.Engine.MinDescriptionLength > 0 {
		engineCfg.Rerank.MinDescriptionLength = cfg.Engine.MinDescriptionLength
	}
	engineCfg.Rerank.RequireDisbursable = cfg.Engine.RequireDisbursable

	// Trust and vetting signal providers are nil until a signal source
	// is integrated; the reranker falls back to its neutral defaults.
	engine, err := recommend.NewEngine(engineCfg, provider, store, nil, nil,
		logging.WithComponent("engine"))
	if err != nil {
		return fmt.Errorf("creating recommendation engine: %w", err)
	}

	maintenance := auth.NewMaintenance(&cfg.Security, logging.WithComponent("auth"))
	if maintenance.Enabled() {
		logger.Info().Msg("Maintenance endpoint authentication configured")
	} else {
		logger.Warn().Msg("Maintenance auth not configured; cache invalidation endpoint disabled")
	}

	var breakerInspector api.BreakerInspector
	if breaker != nil {
		breakerInspector = breaker
	}
	handler := api.NewHandler(engine, store, provider, breakerInspector, maintenance, cfg, version)

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		return fmt.Errorf("creating supervisor tree: %w", err)
	}

	tree.AddCacheService(services.NewCacheJanitorService(
		store, cfg.Cache.CleanupInterval, logging.WithComponent("janitor")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("addr", server.Addr).
		Bool("breaker_enabled", cfg.Directory.BreakerEnabled).
		Bool("persistent_cache", cfg.Cache.BadgerEnabled).
		Msg("Serving")

	err = tree.Serve(ctx)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logger.Info().Msg("Server stopped")
	return nil
}
