// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package services

import (
	"context"
	"time"

	"github.com/tomtom215/curatus/internal/cache"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
)

// JanitorService sweeps expired entries out of the shared cache on a fixed
// interval. Expired entries are also dropped lazily on Get; the sweep exists
// so memory for cold keys is reclaimed without waiting for a lookup.
type JanitorService struct {
	cache    *cache.LRUCache
	interval time.Duration
	name     string
}

// NewJanitorService creates the cache janitor.
func NewJanitorService(c *cache.LRUCache, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &JanitorService{
		cache:    c,
		interval: interval,
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			swept := j.cache.CleanupExpired()
			metrics.RecordCacheSweep(swept)
			metrics.UpdateCacheSize(j.cache.Len())
			if swept > 0 {
				logging.Debug().
					Int("swept", swept).
					Int("remaining", j.cache.Len()).
					Msg("Cache sweep complete")
			}
		}
	}
}

// String implements fmt.Stringer.
func (j *JanitorService) String() string {
	return j.name
}
