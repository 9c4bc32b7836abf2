// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package rows orchestrates the upstream client and the metadata enricher
// into the named candidate pools served as catalog tracks.
package rows

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/enrich"
	"github.com/tomtom215/curatus/internal/listservice"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// Row keys for the configured catalog tracks.
const (
	RowKeyMoviePicks  = "movie-picks"
	RowKeySeriesPicks = "series-picks"
	RowKeyTrending    = "trending"
	RowKeyQuality     = "quality"
)

// largePoolCacheKey caches the large-pool build so server-side catalog
// paging does not rebuild the pool on every page. Small-pool builds are
// deliberately uncached: the personalization path rebuilds per request.
const largePoolCacheKey = "rows:large"

// rawPoolLimit caps each raw upstream fetch. It matches the upstream
// page-size maximum.
const rawPoolLimit = 100

// Builder produces the named candidate pools. All failure modes degrade a
// pool toward smaller-but-nonempty; BuildRows itself never fails.
type Builder struct {
	lister   listservice.Lister
	enricher *enrich.Enricher
	cache    *cache.LRUCache
	cfg      config.RowsConfig
}

// NewBuilder creates a row builder. The cache may be nil to disable
// large-pool caching (tests mostly run without it).
func NewBuilder(lister listservice.Lister, enricher *enrich.Enricher, c *cache.LRUCache, cfg config.RowsConfig) *Builder {
	if cfg.SmallPoolSize <= 0 {
		cfg.SmallPoolSize = 50
	}
	if cfg.LargePoolSize <= 0 {
		cfg.LargePoolSize = 200
	}
	if cfg.IntersectionMin <= 0 {
		cfg.IntersectionMin = 30
	}

	return &Builder{
		lister:   lister,
		enricher: enricher,
		cache:    c,
		cfg:      cfg,
	}
}

// BuildRows produces one Row per configured catalog track:
// movie picks, series picks, trending and quality.
//
// The movies/trending pool is deliberately served twice under different
// labels ("AI picks" and "Trending now"); the duplication is specified
// behavior carried over from the product, not an accident to optimize away.
func (b *Builder) BuildRows(ctx context.Context, wantLargePool bool) []models.Row {
	if wantLargePool && b.cache != nil {
		if cached, found := b.cache.Get(largePoolCacheKey); found {
			if rows, ok := cached.([]models.Row); ok {
				metrics.RecordCacheHit("rows")
				return rows
			}
		}
		metrics.RecordCacheMiss("rows")
	}

	start := time.Now()
	rows := b.build(ctx, wantLargePool)
	metrics.RecordRowBuild(wantLargePool, time.Since(start))

	if wantLargePool && b.cache != nil {
		b.cache.Set(largePoolCacheKey, rows)
	}

	return rows
}

// build runs the fetch/intersect/enrich/truncate pipeline.
func (b *Builder) build(ctx context.Context, wantLargePool bool) []models.Row {
	// Stage 1: three raw pools, fetched concurrently.
	var movieTrending, moviePopular, seriesTrending []models.Candidate

	var fetchWG sync.WaitGroup
	fetchWG.Add(3)
	go func() {
		defer fetchWG.Done()
		movieTrending = b.lister.FetchList(ctx, models.MediaKindMovie, "trending", rawPoolLimit, 1)
	}()
	go func() {
		defer fetchWG.Done()
		moviePopular = b.lister.FetchList(ctx, models.MediaKindMovie, "popular", rawPoolLimit, 1)
	}()
	go func() {
		defer fetchWG.Done()
		seriesTrending = b.lister.FetchList(ctx, models.MediaKindSeries, "trending", rawPoolLimit, 1)
	}()
	fetchWG.Wait()

	// Stage 2: the quality base pool is the identifier intersection of
	// trending and popular movies, in trending order. A thin intersection
	// means the signal is too sparse for a distinct row, so the full
	// trending pool substitutes.
	quality := intersectByID(movieTrending, moviePopular)
	if len(quality) < b.cfg.IntersectionMin {
		logging.Debug().
			Int("intersection", len(quality)).
			Int("threshold", b.cfg.IntersectionMin).
			Msg("Quality intersection below threshold, falling back to trending pool")
		metrics.RecordQualityFallback()
		quality = movieTrending
	}

	capacity := b.cfg.SmallPoolSize
	if wantLargePool {
		capacity = b.cfg.LargePoolSize
	}

	// Stage 3: enrich the four pools concurrently. Failures inside
	// EnrichMany keep originals, so pools shrink only via dedup.
	pools := []struct {
		key    string
		label  string
		kind   models.MediaKind
		source []models.Candidate
	}{
		{RowKeyMoviePicks, "AI picks", models.MediaKindMovie, movieTrending},
		{RowKeySeriesPicks, "Series picks", models.MediaKindSeries, seriesTrending},
		{RowKeyTrending, "Trending now", models.MediaKindMovie, movieTrending},
		{RowKeyQuality, "Critically rated", models.MediaKindMovie, quality},
	}

	rows := make([]models.Row, len(pools))

	var enrichWG sync.WaitGroup
	enrichWG.Add(len(pools))
	for i := range pools {
		go func(idx int) {
			defer enrichWG.Done()
			p := pools[idx]
			items := b.enricher.EnrichMany(ctx, p.source, p.kind)
			rows[idx] = models.Row{
				Key:   p.key,
				Label: p.label,
				Items: truncate(items, capacity),
			}
		}(i)
	}
	enrichWG.Wait()

	for i := range rows {
		metrics.UpdateRowSize(rows[i].Key, len(rows[i].Items))
	}

	return rows
}

// SelectRow returns the row with the given key. An empty or missing row
// falls back to the first nonempty row so pagination callers always get a
// well-formed result.
func SelectRow(rows []models.Row, key string) models.Row {
	for i := range rows {
		if rows[i].Key == key && len(rows[i].Items) > 0 {
			return rows[i]
		}
	}
	for i := range rows {
		if len(rows[i].Items) > 0 {
			return rows[i]
		}
	}
	return models.Row{Key: key, Items: []models.Candidate{}}
}

// intersectByID keeps the candidates of a whose identifier also appears in
// b, preserving a's relative order.
func intersectByID(a, b []models.Candidate) []models.Candidate {
	inB := make(map[string]struct{}, len(b))
	for i := range b {
		inB[b[i].ID] = struct{}{}
	}

	result := make([]models.Candidate, 0, len(a))
	for i := range a {
		if _, ok := inB[a[i].ID]; ok {
			result = append(result, a[i])
		}
	}
	return result
}

// truncate bounds a pool to the given capacity.
func truncate(items []models.Candidate, capacity int) []models.Candidate {
	if len(items) > capacity {
		return items[:capacity]
	}
	return items
}
