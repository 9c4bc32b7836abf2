// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/enrich"
	"github.com/tomtom215/curatus/internal/events"
	"github.com/tomtom215/curatus/internal/models"
	"github.com/tomtom215/curatus/internal/rank"
	"github.com/tomtom215/curatus/internal/rows"
)

// Version is the addon version reported in the manifest and health payloads.
// Overridden at build time via -ldflags.
var Version = "dev"

// EventPublisher pushes one validated interaction event onto the pipeline.
type EventPublisher interface {
	Publish(event models.InteractionEvent) error
}

// BreakerState reports a circuit breaker's current state, used by readiness.
type BreakerState interface {
	State() gobreaker.State
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	builder     *rows.Builder
	enricher    *enrich.Enricher
	ranker      *rank.Ranker
	store       events.Store
	publisher   EventPublisher
	cache       *cache.LRUCache
	listBreaker BreakerState
	metaBreaker BreakerState
	cfg         config.APIConfig
	validate    *validator.Validate
	startTime   time.Time
}

// HandlerConfig bundles the handler dependencies.
type HandlerConfig struct {
	Builder     *rows.Builder
	Enricher    *enrich.Enricher
	Ranker      *rank.Ranker
	Store       events.Store
	Publisher   EventPublisher
	Cache       *cache.LRUCache
	ListBreaker BreakerState
	MetaBreaker BreakerState
	API         config.APIConfig
}

// NewHandler creates the handler set.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.API.CatalogPageSize <= 0 {
		cfg.API.CatalogPageSize = 20
	}
	if cfg.API.DefaultPageSize <= 0 {
		cfg.API.DefaultPageSize = 20
	}
	if cfg.API.MaxPageSize <= 0 {
		cfg.API.MaxPageSize = 100
	}
	return &Handler{
		builder:     cfg.Builder,
		enricher:    cfg.Enricher,
		ranker:      cfg.Ranker,
		store:       cfg.Store,
		publisher:   cfg.Publisher,
		cache:       cfg.Cache,
		listBreaker: cfg.ListBreaker,
		metaBreaker: cfg.MetaBreaker,
		cfg:         cfg.API,
		validate:    validator.New(),
		startTime:   time.Now(),
	}
}

// healthPayload is the liveness/readiness response body.
type healthPayload struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	UptimeSec int64             `json:"uptime_seconds"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthLive godoc
// @Summary Liveness probe
// @Description Reports whether the process is up.
// @Tags health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(healthPayload{
		Status:    "ok",
		Version:   Version,
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
	})
}

// HealthReady godoc
// @Summary Readiness probe
// @Description Reports upstream circuit breaker states and cache reachability.
// @Tags health
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	ready := true

	checks["list_service"] = h.breakerCheck(h.listBreaker)
	checks["meta_service"] = h.breakerCheck(h.metaBreaker)

	// An open breaker means the service still serves cached rows; it only
	// flips readiness when both upstreams are gone.
	if checks["list_service"] == "open" && checks["meta_service"] == "open" {
		ready = false
	}

	if h.cache != nil {
		checks["cache"] = "ok"
	} else {
		checks["cache"] = "disabled"
	}

	payload := healthPayload{
		Status:    "ready",
		Version:   Version,
		UptimeSec: int64(time.Since(h.startTime).Seconds()),
		Checks:    checks,
	}

	if !ready {
		payload.Status = "degraded"
		NewResponseWriter(w, r).ErrorWithDetails(
			http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"All upstream services unavailable", payload)
		return
	}

	NewResponseWriter(w, r).Success(payload)
}

func (h *Handler) breakerCheck(b BreakerState) string {
	if b == nil {
		return "unknown"
	}
	switch b.State() {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "open"
	}
}
