// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/models"
)

// fakeLooker returns canned records per identifier and counts lookups.
// Identifiers listed in failing produce errors.
type fakeLooker struct {
	mu      sync.Mutex
	records map[string]*MetaRecord
	failing map[string]bool
	calls   map[string]int
}

func newFakeLooker() *fakeLooker {
	return &fakeLooker{
		records: make(map[string]*MetaRecord),
		failing: make(map[string]bool),
		calls:   make(map[string]int),
	}
}

func (f *fakeLooker) Lookup(_ context.Context, _ models.MediaKind, externalID string) (*MetaRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[externalID]++
	if f.failing[externalID] {
		return nil, errors.New("metadata service unavailable")
	}
	if record, ok := f.records[externalID]; ok {
		return record, nil
	}
	return nil, fmt.Errorf("no record for %s", externalID)
}

func (f *fakeLooker) callCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func candidate(id, title string) models.Candidate {
	return models.Candidate{ID: id, Title: title, Kind: models.MediaKindMovie}
}

func TestEnrich_FillsDisplayFields(t *testing.T) {
	looker := newFakeLooker()
	looker.records["tt0000001"] = &MetaRecord{
		Name:        "Canonical Title",
		Description: "A description.",
		Poster:      "https://images.test/p.jpg",
		Genres:      []string{"Drama"},
		Year:        2020,
		Rating:      7.5,
	}

	enricher := NewEnricher(looker, nil)
	got := enricher.Enrich(context.Background(), candidate("tt0000001", "Raw Title"))

	if got.Title != "Canonical Title" {
		t.Errorf("Expected canonical title, got %q", got.Title)
	}
	if got.Poster != "https://images.test/p.jpg" || got.Description != "A description." {
		t.Errorf("Expected poster and description filled, got %+v", got)
	}
	if got.Year != 2020 || got.Rating != 7.5 {
		t.Errorf("Expected year and rating filled, got %+v", got)
	}
}

func TestEnrich_KeepsOriginalOnFailure(t *testing.T) {
	looker := newFakeLooker()
	looker.failing["tt0000002"] = true

	enricher := NewEnricher(looker, nil)
	original := candidate("tt0000002", "B")
	got := enricher.Enrich(context.Background(), original)

	if got.Title != "B" || got.Description != "" || got.Poster != "" {
		t.Errorf("Expected original candidate unchanged, got %+v", got)
	}
}

func TestEnrich_PreservesUpstreamRating(t *testing.T) {
	looker := newFakeLooker()
	looker.records["tt0000003"] = &MetaRecord{Name: "X", Rating: 5.0}

	enricher := NewEnricher(looker, nil)
	c := candidate("tt0000003", "X")
	c.Rating = 8.8 // Ranking service already supplied a rating

	if got := enricher.Enrich(context.Background(), c); got.Rating != 8.8 {
		t.Errorf("Expected upstream rating preserved, got %v", got.Rating)
	}
}

func TestEnrich_CacheHitBypassesLookup(t *testing.T) {
	looker := newFakeLooker()
	looker.records["tt0000004"] = &MetaRecord{Name: "Cached Once"}

	c := cache.NewLRUCache(100, time.Minute)
	enricher := NewEnricher(looker, c)

	first := enricher.Enrich(context.Background(), candidate("tt0000004", "Raw"))
	second := enricher.Enrich(context.Background(), candidate("tt0000004", "Raw"))

	if first.Title != "Cached Once" || second.Title != "Cached Once" {
		t.Errorf("Expected both enrichments to resolve, got %q / %q", first.Title, second.Title)
	}
	if calls := looker.callCount("tt0000004"); calls != 1 {
		t.Errorf("Expected exactly 1 network lookup, got %d", calls)
	}
}

func TestEnrich_FailuresAreNotCached(t *testing.T) {
	looker := newFakeLooker()
	looker.failing["tt0000005"] = true

	c := cache.NewLRUCache(100, time.Minute)
	enricher := NewEnricher(looker, c)

	enricher.Enrich(context.Background(), candidate("tt0000005", "X"))

	// Recovery: the record appears and the failure flag clears
	looker.mu.Lock()
	looker.failing["tt0000005"] = false
	looker.records["tt0000005"] = &MetaRecord{Name: "Recovered"}
	looker.mu.Unlock()

	got := enricher.Enrich(context.Background(), candidate("tt0000005", "X"))
	if got.Title != "Recovered" {
		t.Errorf("Expected recovery lookup after uncached failure, got %q", got.Title)
	}
}

func TestEnrichMany_PreservesOrder(t *testing.T) {
	looker := newFakeLooker()
	ids := make([]string, 20)
	input := make([]models.Candidate, 20)
	for i := range input {
		ids[i] = fmt.Sprintf("tt%07d", i+1)
		input[i] = candidate(ids[i], fmt.Sprintf("Title %d", i+1))
		looker.records[ids[i]] = &MetaRecord{Name: fmt.Sprintf("Enriched %d", i+1)}
	}

	enricher := NewEnricher(looker, nil)
	got := enricher.EnrichMany(context.Background(), input, models.MediaKindMovie)

	if len(got) != len(input) {
		t.Fatalf("Expected %d candidates, got %d", len(input), len(got))
	}
	for i := range got {
		if got[i].ID != ids[i] {
			t.Errorf("Position %d: expected %s, got %s", i, ids[i], got[i].ID)
		}
	}
}

func TestEnrichMany_NeverDropsOnFailure(t *testing.T) {
	looker := newFakeLooker()
	looker.records["tt0000001"] = &MetaRecord{Name: "Enriched A", Description: "desc"}
	looker.failing["tt0000002"] = true

	enricher := NewEnricher(looker, nil)
	input := []models.Candidate{
		candidate("tt0000001", "A"),
		candidate("tt0000002", "B"),
	}

	got := enricher.EnrichMany(context.Background(), input, models.MediaKindMovie)

	if len(got) != 2 {
		t.Fatalf("Expected 2 candidates (no failure drops), got %d", len(got))
	}
	if got[0].Title != "Enriched A" {
		t.Errorf("Expected first candidate enriched, got %q", got[0].Title)
	}
	if got[1].Title != "B" || got[1].Description != "" {
		t.Errorf("Expected second candidate kept pre-enrichment, got %+v", got[1])
	}
}

func TestEnrichMany_DedupesByIdentifier(t *testing.T) {
	looker := newFakeLooker()
	looker.records["tt0000001"] = &MetaRecord{Name: "Once"}
	looker.records["tt0000002"] = &MetaRecord{Name: "Other"}

	enricher := NewEnricher(looker, nil)
	input := []models.Candidate{
		candidate("tt0000001", "A"),
		candidate("tt0000002", "B"),
		candidate("tt0000001", "A again"),
	}

	got := enricher.EnrichMany(context.Background(), input, models.MediaKindMovie)

	if len(got) != 2 {
		t.Fatalf("Expected duplicates removed, got %d candidates", len(got))
	}
	if got[0].ID != "tt0000001" || got[1].ID != "tt0000002" {
		t.Errorf("Expected first occurrences kept in order, got %v", []string{got[0].ID, got[1].ID})
	}
}

func TestEnrichMany_AppliesKindHint(t *testing.T) {
	looker := newFakeLooker()
	looker.records["tt0000030"] = &MetaRecord{Name: "Hinted"}

	enricher := NewEnricher(looker, nil)
	input := []models.Candidate{{ID: "tt0000030", Title: "No Kind"}}

	got := enricher.EnrichMany(context.Background(), input, models.MediaKindSeries)

	if len(got) != 1 || got[0].Kind != models.MediaKindSeries {
		t.Errorf("Expected kind hint applied, got %+v", got)
	}
}

func TestEnrichMany_EmptyInput(t *testing.T) {
	enricher := NewEnricher(newFakeLooker(), nil)

	got := enricher.EnrichMany(context.Background(), nil, models.MediaKindMovie)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected non-nil empty slice, got %v", got)
	}
}
