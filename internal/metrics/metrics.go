// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Upstream service calls (ranking-list and metadata services)
// - Cache efficiency
// - Row building and ranking
// - Interaction event ingestion

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curatus_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream Service Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_upstream_requests_total",
			Help: "Total number of upstream service requests",
		},
		[]string{"service", "outcome"}, // service: "list", "meta"; outcome: "success", "failure"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curatus_upstream_request_duration_seconds",
			Help:    "Upstream service request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	UpstreamRowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_upstream_rows_dropped_total",
			Help: "Total number of upstream rows dropped for invalid identifiers",
		},
		[]string{"service"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "meta", "rows"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curatus_cache_entries",
			Help: "Current number of cached entries",
		},
	)

	CacheExpiredSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curatus_cache_expired_swept_total",
			Help: "Total number of expired entries removed by the janitor",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "curatus_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Row Building Metrics
	RowBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_row_builds_total",
			Help: "Total number of row-build cycles",
		},
		[]string{"pool"}, // "small", "large"
	)

	RowBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curatus_row_build_duration_seconds",
			Help:    "Duration of row-build cycles in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	RowSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "curatus_row_items",
			Help: "Number of items in each named row after the last build",
		},
		[]string{"row"},
	)

	QualityFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curatus_quality_fallbacks_total",
			Help: "Total number of quality rows that fell back to the trending pool",
		},
	)

	// Enrichment Metrics
	EnrichmentLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_enrichment_lookups_total",
			Help: "Total number of metadata enrichment lookups",
		},
		[]string{"outcome"}, // "enriched", "kept_original", "cached"
	)

	// Ranking Metrics
	RankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curatus_rank_duration_seconds",
			Help:    "Duration of personalization ranking passes in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RankedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curatus_ranked_candidates",
			Help:    "Number of candidates per ranking pass",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800},
		},
	)

	// Event Pipeline Metrics
	EventsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curatus_events_ingested_total",
			Help: "Total number of interaction events accepted for processing",
		},
	)

	EventsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curatus_events_rejected_total",
			Help: "Total number of interaction events rejected",
		},
		[]string{"reason"}, // "validation", "malformed"
	)

	EventsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curatus_events_stored_total",
			Help: "Total number of interaction events appended to the store",
		},
	)

	EventsPoisoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curatus_events_poisoned_total",
			Help: "Total number of interaction events routed to the poison topic",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one call to an upstream service
func RecordUpstreamRequest(service string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	UpstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordDroppedRows records upstream rows dropped by the identifier filter
func RecordDroppedRows(service string, count int) {
	if count > 0 {
		UpstreamRowsDropped.WithLabelValues(service).Add(float64(count))
	}
}

// RecordCacheHit records a cache hit for the given cache type
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss for the given cache type
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// UpdateCacheSize sets the current cache entry count
func UpdateCacheSize(size int) {
	CacheSize.Set(float64(size))
}

// RecordCacheSweep records entries removed by an expiry sweep
func RecordCacheSweep(removed int) {
	if removed > 0 {
		CacheExpiredSwept.Add(float64(removed))
	}
}

// RecordRowBuild records one completed row-build cycle
func RecordRowBuild(largePool bool, duration time.Duration) {
	pool := "small"
	if largePool {
		pool = "large"
	}
	RowBuildsTotal.WithLabelValues(pool).Inc()
	RowBuildDuration.Observe(duration.Seconds())
}

// UpdateRowSize records the item count of a named row after a build
func UpdateRowSize(row string, size int) {
	RowSize.WithLabelValues(row).Set(float64(size))
}

// RecordQualityFallback records a quality row falling back to trending
func RecordQualityFallback() {
	QualityFallbacks.Inc()
}

// RecordEnrichment records one enrichment lookup outcome
func RecordEnrichment(outcome string) {
	EnrichmentLookups.WithLabelValues(outcome).Inc()
}

// RecordRank records one personalization ranking pass
func RecordRank(candidates int, duration time.Duration) {
	RankDuration.Observe(duration.Seconds())
	RankedCandidates.Observe(float64(candidates))
}

// RecordEventIngested records an accepted interaction event
func RecordEventIngested() {
	EventsIngested.Inc()
}

// RecordEventRejected records a rejected interaction event
func RecordEventRejected(reason string) {
	EventsRejected.WithLabelValues(reason).Inc()
}

// RecordEventStored records an event appended to the store
func RecordEventStored() {
	EventsStored.Inc()
}

// RecordEventPoisoned records an event routed to the poison topic
func RecordEventPoisoned() {
	EventsPoisoned.Inc()
}
