// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package metrics provides Prometheus metrics collection and export for observability.

The package exposes package-level promauto collectors plus helper functions so
call sites never touch a collector directly.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Upstream service calls (ranking-list and metadata services)
  - Circuit breaker state transitions
  - Cache hit/miss rates and janitor sweeps
  - Row building, enrichment outcomes and quality fallbacks
  - Personalization ranking latency
  - Interaction event ingestion and the poison topic

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:7000/metrics

# Usage Example

	// Record a successful upstream call
	metrics.RecordUpstreamRequest("list", time.Since(start), nil)

	// Record cache efficiency
	metrics.RecordCacheHit("meta")
	metrics.RecordCacheMiss("meta")

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:
  - Endpoint labels are normalized route patterns, never raw URLs
  - Upstream services are limited to the fixed "list"/"meta" pair
  - Row labels come from the fixed catalog track set
  - User-specific labels are avoided entirely
*/
package metrics
