// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package listservice

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// BreakerClient wraps Client with the circuit breaker pattern.
// The breaker prevents hammering the ranking-list service while it is
// unavailable or slow; a rejected or failed call degrades to the same
// empty-pool result the row builder already tolerates.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. Tests should exercise the
// wrapped client directly rather than waiting out breaker state changes.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[[]models.Candidate]
	name   string
}

// NewBreakerClient creates a ranking-list client with circuit breaker.
// Circuit breaker configuration:
// - Max 3 concurrent requests in half-open state
// - 1 minute measurement window
// - 2 minute timeout before attempting recovery
// - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(cfg *config.ListServiceConfig) *BreakerClient {
	client := NewClient(cfg)
	cbName := "list-service"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]models.Candidate](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// FetchList retrieves a ranked list with circuit breaker protection.
// Any failure, including a rejected call while the circuit is open, yields
// an empty slice so the row builder's degradation semantics hold.
func (b *BreakerClient) FetchList(ctx context.Context, kind models.MediaKind, listPath string, limit, page int) []models.Candidate {
	result, err := b.cb.Execute(func() ([]models.Candidate, error) {
		rows, ferr := b.client.fetchRaw(ctx, kind, listPath, limit, page)
		if ferr != nil {
			return nil, ferr
		}
		return b.client.normalize(rows, kind), nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Ranking-list request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
			logging.Debug().
				Err(err).
				Str("kind", kind.String()).
				Str("list", listPath).
				Msg("Ranking-list fetch failed, returning empty pool")
		}
		return []models.Candidate{}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result
}

// State returns the current breaker state for readiness reporting.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ensure BreakerClient implements Lister
var _ Lister = (*BreakerClient)(nil)
