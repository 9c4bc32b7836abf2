// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/curatus/internal/middleware"
)

// Router assembles the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router from the handler set and middleware config.
func NewRouter(handler *Handler, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// chiMiddleware adapts func(http.HandlerFunc) http.HandlerFunc middleware to
// Chi's func(http.Handler) http.Handler shape for r.Use().
func chiMiddlewareAdapter(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi builds the full route tree.
//
// The protocol surface stays wide open (wildcard CORS, no security headers)
// because third-party player clients call it cross-origin. The internal API
// group carries rate limiting, security headers and per-request metrics.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddlewareAdapter(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled everywhere

	// Discovery protocol endpoints.
	r.Group(func(r chi.Router) {
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))

		r.Get("/manifest.json", router.handler.Manifest)
		r.Get("/catalog/{type}/{id}.json", router.handler.Catalog)
		r.Get("/catalog/{type}/{id}/{extra}", router.handler.Catalog)
		r.Get("/meta/{type}/{id}.json", router.handler.Meta)
		r.Get("/stream/{type}/{id}.json", router.handler.Stream)
	})

	// Internal API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddlewareAdapter(middleware.PrometheusMetrics))

		r.Post("/events", router.handler.IngestEvent)
		r.Get("/feed/{userId}", router.handler.Feed)
		r.Get("/rows", router.handler.Rows)
	})

	// Operational endpoints.
	r.Get("/health", router.handler.HealthLive)
	r.Get("/ready", router.handler.HealthReady)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
