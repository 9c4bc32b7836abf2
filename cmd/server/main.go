// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/curatus/docs" // Import generated swagger docs

	"github.com/tomtom215/curatus/internal/api"
	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/enrich"
	"github.com/tomtom215/curatus/internal/events"
	"github.com/tomtom215/curatus/internal/listservice"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/rank"
	"github.com/tomtom215/curatus/internal/rows"
	"github.com/tomtom215/curatus/internal/supervisor"
	"github.com/tomtom215/curatus/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Curatus with supervisor tree")
	logging.Info().
		Str("list_service", cfg.ListService.URL).
		Str("meta_service", cfg.MetaService.URL).
		Bool("list_credential", cfg.ListService.ClientID != "").
		Msg("Configuration loaded")

	// Shared TTL cache: metadata records and the large row pool.
	sharedCache := cache.NewLRUCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	// Upstream clients, each behind its own circuit breaker.
	listClient := listservice.NewBreakerClient(&cfg.ListService)
	metaClient := enrich.NewBreakerClient(&cfg.MetaService)

	enricher := enrich.NewEnricher(metaClient, sharedCache)
	builder := rows.NewBuilder(listClient, enricher, sharedCache, cfg.Rows)
	ranker := rank.NewRanker(cfg.Rank)

	// Interaction-event store and pipeline.
	store := events.NewMemoryStore()
	pipeline, err := events.NewPipeline(cfg.Events, store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create event pipeline")
	}

	// HTTP surface.
	handler := api.NewHandler(api.HandlerConfig{
		Builder:     builder,
		Enricher:    enricher,
		Ranker:      ranker,
		Store:       store,
		Publisher:   pipeline,
		Cache:       sharedCache,
		ListBreaker: listClient,
		MetaBreaker: metaClient,
		API:         cfg.API,
	})

	router := api.NewRouter(handler, &api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.API.CORSOrigins,
		CORSAllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders:   []string{"Content-Type"},
		CORSAllowCredentials: false,
		CORSMaxAge:           86400,
		RateLimitRequests:    cfg.API.RateLimitReqs,
		RateLimitWindow:      cfg.API.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	// Supervisor tree.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewRefresherService(builder, cfg.Rows.RefreshInterval))
	tree.AddDataService(services.NewJanitorService(sharedCache, cfg.Cache.CleanupInterval))
	tree.AddEventsService(services.NewPipelineService(pipeline))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor has fully stopped.
	drain := time.After(cfg.Server.ShutdownTimeout + 5*time.Second)
	for {
		select {
		case err, ok := <-errCh:
			if !ok {
				reportUnstopped(tree)
				logging.Info().Msg("Application stopped gracefully")
				return
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("Supervisor shutdown error")
			}
		case <-drain:
			reportUnstopped(tree)
			logging.Warn().Msg("Shutdown drain timed out")
			return
		}
	}
}

func reportUnstopped(tree *supervisor.Tree) {
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
}
