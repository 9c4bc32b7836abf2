// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/enrich"
	"github.com/tomtom215/curatus/internal/events"
	"github.com/tomtom215/curatus/internal/models"
	"github.com/tomtom215/curatus/internal/rank"
	"github.com/tomtom215/curatus/internal/rows"
)

// Shared test doubles for the api package.

type fakeLister struct {
	mu    sync.Mutex
	pools map[string][]models.Candidate
}

func newFakeLister() *fakeLister {
	return &fakeLister{pools: make(map[string][]models.Candidate)}
}

func (f *fakeLister) set(kind models.MediaKind, listPath string, pool []models.Candidate) {
	f.pools[kind.String()+"/"+listPath] = pool
}

func (f *fakeLister) FetchList(_ context.Context, kind models.MediaKind, listPath string, _, _ int) []models.Candidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	pool := f.pools[kind.String()+"/"+listPath]
	out := make([]models.Candidate, len(pool))
	copy(out, pool)
	return out
}

type fakeLooker struct {
	failing map[string]bool
}

func (f *fakeLooker) Lookup(_ context.Context, _ models.MediaKind, externalID string) (*enrich.MetaRecord, error) {
	if f.failing != nil && f.failing[externalID] {
		return nil, errors.New("metadata unavailable")
	}
	return &enrich.MetaRecord{
		Name:        "Enriched " + externalID,
		Description: "About " + externalID,
		Poster:      "https://images.test/" + externalID + ".jpg",
		Genres:      []string{"Drama"},
		Year:        2021,
		Rating:      7.4,
	}, nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []models.InteractionEvent
	err    error
}

func (s *stubPublisher) Publish(event models.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubPublisher) published() []models.InteractionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.InteractionEvent, len(s.events))
	copy(out, s.events)
	return out
}

type stubBreaker struct {
	state gobreaker.State
}

func (s *stubBreaker) State() gobreaker.State { return s.state }

// testEnv bundles a fully wired handler with its doubles.
type testEnv struct {
	lister    *fakeLister
	looker    *fakeLooker
	store     *events.MemoryStore
	publisher *stubPublisher
	handler   *Handler
	router    *Router
}

func newTestEnv() *testEnv {
	lister := newFakeLister()
	looker := &fakeLooker{}
	store := events.NewMemoryStore()
	publisher := &stubPublisher{}
	c := cache.NewLRUCache(100, time.Minute)

	enricher := enrich.NewEnricher(looker, c)
	builder := rows.NewBuilder(lister, enricher, c, config.RowsConfig{
		SmallPoolSize:   50,
		LargePoolSize:   200,
		IntersectionMin: 30,
	})

	handler := NewHandler(HandlerConfig{
		Builder:     builder,
		Enricher:    enricher,
		Ranker:      rank.NewRanker(config.RankConfig{}),
		Store:       store,
		Publisher:   publisher,
		Cache:       c,
		ListBreaker: &stubBreaker{state: gobreaker.StateClosed},
		MetaBreaker: &stubBreaker{state: gobreaker.StateClosed},
		API: config.APIConfig{
			CatalogPageSize: 20,
			DefaultPageSize: 20,
			MaxPageSize:     100,
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	})

	return &testEnv{
		lister:    lister,
		looker:    looker,
		store:     store,
		publisher: publisher,
		handler:   handler,
		router:    NewRouter(handler, DefaultChiMiddlewareConfig()),
	}
}

func moviePool(n int) []models.Candidate {
	pool := make([]models.Candidate, n)
	for i := range pool {
		pool[i] = models.Candidate{
			ID:    fmt.Sprintf("tt%07d", i+1),
			Title: fmt.Sprintf("Movie %d", i+1),
			Kind:  models.MediaKindMovie,
		}
	}
	return pool
}
