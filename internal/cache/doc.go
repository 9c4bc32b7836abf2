// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
Package cache provides the bounded in-memory TTL cache shared by the
metadata enricher and the row builder.

The cache is a thread-safe LRU with a single uniform time-to-live applied to
every entry at insertion. There is no per-key TTL override and no persistence;
the cache is cold on every process restart.

# Semantics

  - Get returns the stored value and moves the entry to the front of the
    recency list. Entries past their TTL are treated as absent on lookup and
    lazily removed, so no entry outlives its TTL even if size pressure never
    evicts it.
  - Set inserts or replaces an entry, resetting its TTL. When the cache is at
    capacity the least recently used entry is evicted first.
  - CleanupExpired sweeps expired entries eagerly; the supervisor runs it
    periodically so long-idle entries do not pin memory until next lookup.

# Key Conventions

	meta:<mediaKind>:<externalId>   enriched metadata records
	rows:large                      the large row pool used for catalog paging

# Performance

O(1) Get, Set and eviction via a doubly-linked recency list over a hashmap,
following the pattern from TheAlgorithms/Go LRU implementation.
*/
package cache
