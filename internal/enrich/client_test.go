// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/models"
)

const metaMovieJSON = `{
	"meta": {
		"id": "tt0000001",
		"name": "First Picture",
		"description": "A film about beginnings.",
		"poster": "https://images.test/tt0000001.jpg",
		"background": "https://images.test/tt0000001-bg.jpg",
		"genres": ["Drama", "Mystery"],
		"releaseInfo": "2021",
		"imdbRating": "7.8"
	}
}`

const metaSeriesRangeJSON = `{
	"meta": {
		"id": "tt0000020",
		"name": "First Show",
		"background": "https://images.test/tt0000020-bg.jpg",
		"genres": ["Comedy"],
		"releaseInfo": "2015-2018"
	}
}`

func metaTestConfig(url string) *config.MetaServiceConfig {
	return &config.MetaServiceConfig{
		URL:     url,
		Timeout: 5 * time.Second,
	}
}

func TestLookup_ParsesRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meta/movie/tt0000001.json" {
			t.Errorf("Expected path /meta/movie/tt0000001.json, got %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(metaMovieJSON))
	}))
	defer server.Close()

	client := NewClient(metaTestConfig(server.URL))
	record, err := client.Lookup(context.Background(), models.MediaKindMovie, "tt0000001")
	if err != nil {
		t.Fatalf("Unexpected lookup error: %v", err)
	}

	if record.Name != "First Picture" {
		t.Errorf("Expected name \"First Picture\", got %q", record.Name)
	}
	if record.Poster != "https://images.test/tt0000001.jpg" {
		t.Errorf("Expected poster URL, got %q", record.Poster)
	}
	if record.Year != 2021 {
		t.Errorf("Expected year 2021, got %d", record.Year)
	}
	if record.Rating != 7.8 {
		t.Errorf("Expected rating 7.8, got %v", record.Rating)
	}
	if len(record.Genres) != 2 || record.Genres[0] != "Drama" {
		t.Errorf("Expected genres [Drama Mystery], got %v", record.Genres)
	}
}

func TestLookup_BackgroundFallbackAndReleaseRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metaSeriesRangeJSON))
	}))
	defer server.Close()

	client := NewClient(metaTestConfig(server.URL))
	record, err := client.Lookup(context.Background(), models.MediaKindSeries, "tt0000020")
	if err != nil {
		t.Fatalf("Unexpected lookup error: %v", err)
	}

	if record.Poster != "https://images.test/tt0000020-bg.jpg" {
		t.Errorf("Expected background fallback for poster, got %q", record.Poster)
	}
	if record.Year != 2015 {
		t.Errorf("Expected leading year 2015 from release range, got %d", record.Year)
	}
}

func TestLookup_ErrorOnNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(metaTestConfig(server.URL))
	if _, err := client.Lookup(context.Background(), models.MediaKindMovie, "tt9999999"); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestLookup_ErrorOnEmptyEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta": null}`))
	}))
	defer server.Close()

	client := NewClient(metaTestConfig(server.URL))
	if _, err := client.Lookup(context.Background(), models.MediaKindMovie, "tt0000001"); err == nil {
		t.Error("Expected error for envelope with no record")
	}
}

func TestLookup_ErrorOnMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(metaTestConfig(server.URL))
	if _, err := client.Lookup(context.Background(), models.MediaKindMovie, "tt0000001"); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

func TestLookup_ErrorOnTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(metaTestConfig(server.URL))
	if _, err := client.Lookup(context.Background(), models.MediaKindMovie, "tt0000001"); err == nil {
		t.Error("Expected error for refused connection")
	}
}

func TestMetaPayload_RatingParsing(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		want   float64
	}{
		{"valid rating", "8.2", 8.2},
		{"integer rating", "7", 7},
		{"malformed rating", "N/A", 0},
		{"empty rating", "", 0},
		{"negative rating ignored", "-1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := &metaPayload{Name: "X", IMDBRating: tt.rating}
			if got := payload.parse().Rating; got != tt.want {
				t.Errorf("Expected rating %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBreakerClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(metaMovieJSON))
	}))
	defer server.Close()

	breaker := NewBreakerClient(metaTestConfig(server.URL))
	record, err := breaker.Lookup(context.Background(), models.MediaKindMovie, "tt0000001")
	if err != nil {
		t.Fatalf("Unexpected breaker lookup error: %v", err)
	}
	if record.Name != "First Picture" {
		t.Errorf("Expected record through breaker, got %+v", record)
	}
}

func TestBreakerClient_PropagatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	breaker := NewBreakerClient(metaTestConfig(server.URL))
	if _, err := breaker.Lookup(context.Background(), models.MediaKindMovie, "tt0000001"); err == nil {
		t.Error("Expected breaker to propagate lookup failure")
	}
}
