// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package enrich

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// defaultLookupConcurrency bounds the in-flight metadata lookups per
// EnrichMany call. Lookups have no ordering dependency between items, so
// completion order is irrelevant; results are written back by input index.
const defaultLookupConcurrency = 8

// Enricher resolves minimal candidates into fuller display records.
//
// The central guarantee is partial-failure tolerance: a failed lookup for
// one candidate yields the original, pre-enrichment candidate unchanged
// rather than omitting it. Catalog rows never shrink because the metadata
// service had a bad day.
type Enricher struct {
	looker      Looker
	cache       *cache.LRUCache
	concurrency int
}

// NewEnricher creates an enricher backed by the given lookup client and
// shared TTL cache. The cache may be nil, in which case every enrichment
// hits the network.
func NewEnricher(looker Looker, c *cache.LRUCache) *Enricher {
	return &Enricher{
		looker:      looker,
		cache:       c,
		concurrency: defaultLookupConcurrency,
	}
}

// cacheKey builds the namespaced cache key for one metadata lookup.
func cacheKey(kind models.MediaKind, externalID string) string {
	return fmt.Sprintf("meta:%s:%s", kind, externalID)
}

// Enrich resolves one candidate. A cache hit bypasses the network call
// entirely; a lookup failure returns the candidate unchanged.
func (e *Enricher) Enrich(ctx context.Context, candidate models.Candidate) models.Candidate {
	key := cacheKey(candidate.Kind, candidate.ID)

	if e.cache != nil {
		if cached, found := e.cache.Get(key); found {
			if record, ok := cached.(*MetaRecord); ok {
				metrics.RecordCacheHit("meta")
				metrics.RecordEnrichment("cached")
				return merge(candidate, record)
			}
		}
		metrics.RecordCacheMiss("meta")
	}

	record, err := e.looker.Lookup(ctx, candidate.Kind, candidate.ID)
	if err != nil {
		logging.Debug().
			Err(err).
			Str("id", candidate.ID).
			Str("kind", candidate.Kind.String()).
			Msg("Metadata lookup failed, keeping original candidate")
		metrics.RecordEnrichment("kept_original")
		return candidate
	}

	if e.cache != nil {
		e.cache.Set(key, record)
	}
	metrics.RecordEnrichment("enriched")

	return merge(candidate, record)
}

// EnrichMany resolves a pool of candidates, preserving input order.
//
// The result has the same length as the input except when duplicate
// identifiers are removed: after enrichment the pool is deduplicated by
// identifier, keeping the first occurrence. Lookup failures never remove
// an item. The kind hint fills in candidates arriving without a media kind
// (single-item protocol lookups construct such candidates).
func (e *Enricher) EnrichMany(ctx context.Context, candidates []models.Candidate, kindHint models.MediaKind) []models.Candidate {
	if len(candidates) == 0 {
		return []models.Candidate{}
	}

	enriched := make([]models.Candidate, len(candidates))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i := range candidates {
		candidate := candidates[i]
		if !candidate.Kind.Valid() {
			candidate.Kind = kindHint
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, c models.Candidate) {
			defer wg.Done()
			defer func() { <-sem }()
			enriched[idx] = e.Enrich(ctx, c)
		}(i, candidate)
	}

	wg.Wait()

	return dedupeByID(enriched)
}

// merge fills a candidate's display fields from a metadata record.
// Fields already carrying upstream data (rating, year) are kept unless
// absent; display fields always prefer the richer metadata.
func merge(candidate models.Candidate, record *MetaRecord) models.Candidate {
	if record.Name != "" {
		candidate.Title = record.Name
	}
	if record.Poster != "" {
		candidate.Poster = record.Poster
	}
	if record.Description != "" {
		candidate.Description = record.Description
	}
	if len(record.Genres) > 0 {
		candidate.Genres = record.Genres
	}
	if candidate.Year == 0 {
		candidate.Year = record.Year
	}
	if candidate.Rating == 0 {
		candidate.Rating = record.Rating
	}
	return candidate
}

// dedupeByID removes candidates whose identifier was already seen,
// keeping the first occurrence in input order.
func dedupeByID(candidates []models.Candidate) []models.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	result := make([]models.Candidate, 0, len(candidates))

	for i := range candidates {
		if _, dup := seen[candidates[i].ID]; dup {
			continue
		}
		seen[candidates[i].ID] = struct{}{}
		result = append(result, candidates[i])
	}

	return result
}
