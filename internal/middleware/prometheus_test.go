// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/curatus/internal/metrics"
)

func TestPrometheusMetrics_RecordsRequest(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/middleware-test", "200"))

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/middleware-test", nil)
	handler(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/middleware-test", "200"))
	if after != before+1 {
		t.Errorf("Expected request counter to increment, got %v -> %v", before, after)
	}
}

func TestPrometheusMetrics_CapturesStatusCode(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("POST", "/middleware-status", "400"))

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/middleware-status", nil)
	handler(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("POST", "/middleware-status", "400"))
	if after != before+1 {
		t.Errorf("Expected 400 counter to increment, got %v -> %v", before, after)
	}
}

func TestPrometheusMetrics_DefaultStatusOK(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/middleware-default", "200"))

	// Handler never calls WriteHeader; net/http defaults to 200
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/middleware-default", nil)
	handler(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/middleware-default", "200"))
	if after != before+1 {
		t.Errorf("Expected 200 counter to increment, got %v -> %v", before, after)
	}
}

func TestPrometheusMetrics_ActiveGaugeReturnsToBaseline(t *testing.T) {
	baseline := testutil.ToFloat64(metrics.APIActiveRequests)

	var during float64
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.APIActiveRequests)
	})

	req := httptest.NewRequest(http.MethodGet, "/middleware-gauge", nil)
	handler(httptest.NewRecorder(), req)

	if during != baseline+1 {
		t.Errorf("Expected active gauge %v during request, got %v", baseline+1, during)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != baseline {
		t.Errorf("Expected active gauge back to %v, got %v", baseline, got)
	}
}
