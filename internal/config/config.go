// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

// Package config provides centralized configuration for all Curatus
// components: the HTTP server, the two upstream services, the shared TTL
// cache, row building, ranking, the event pipeline and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in sensible defaults for every setting
//  2. Config File: optional YAML config file (config.yaml)
//  3. Environment Variables: override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	// cfg.ListService.URL, cfg.Cache.TTL, etc. are now populated
package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	ListService ListServiceConfig `koanf:"listservice"`
	MetaService MetaServiceConfig `koanf:"metaservice"`
	Cache       CacheConfig       `koanf:"cache"`
	Rows        RowsConfig        `koanf:"rows"`
	Rank        RankConfig        `koanf:"rank"`
	Events      EventsConfig      `koanf:"events"`
	API         APIConfig         `koanf:"api"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `koanf:"port"`
	Host string `koanf:"host"`

	// Timeout applies to both request reads and response writes.
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown during supervisor stop.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ListServiceConfig holds settings for the ranking-list service client.
// The service is unauthenticated-capable; ClientID, when set, is sent as a
// credential header for a higher request quota.
type ListServiceConfig struct {
	URL      string `koanf:"url"`
	ClientID string `koanf:"client_id"`

	// PageLimit is the upstream page-size maximum. Requests asking for more
	// are capped here before the call goes out.
	PageLimit int `koanf:"page_limit"`

	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond and Burst configure the client-side rate limiter
	// protecting the upstream quota.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// MetaServiceConfig holds settings for the metadata lookup service client.
// No credential is required; lookup failures are absorbed by the enricher.
type MetaServiceConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// CacheConfig holds settings for the shared TTL cache.
type CacheConfig struct {
	// MaxEntries bounds the cache size; the least recently used entry is
	// evicted once the bound is reached.
	MaxEntries int `koanf:"max_entries"`

	// TTL is applied uniformly to every entry at insertion.
	TTL time.Duration `koanf:"ttl"`

	// CleanupInterval is how often the janitor sweeps expired entries.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// RowsConfig holds row-building settings.
type RowsConfig struct {
	// SmallPoolSize caps each row for regular requests.
	SmallPoolSize int `koanf:"small_pool_size"`

	// LargePoolSize caps each row when a large pool is requested for
	// server-side catalog paging.
	LargePoolSize int `koanf:"large_pool_size"`

	// IntersectionMin is the minimum size for the quality intersection;
	// below it the quality row falls back to the trending pool.
	IntersectionMin int `koanf:"intersection_min"`

	// RefreshInterval is how often the background refresher rebuilds the
	// large pool to keep the cache warm. Zero disables the refresher.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// RankConfig holds personalization scoring settings. The defaults are the
// canonical formula weights; they are exposed for experimentation, not
// routine tuning.
type RankConfig struct {
	RatingWeight     float64 `koanf:"rating_weight"`
	SimilarityWeight float64 `koanf:"similarity_weight"`
	RecencyWeight    float64 `koanf:"recency_weight"`

	// RecencyBaseYear anchors the recency factor: titles from this year
	// score 1.0, each year after adds RecencyPerYear.
	RecencyBaseYear int     `koanf:"recency_base_year"`
	RecencyPerYear  float64 `koanf:"recency_per_year"`

	// Diversify enables the genre-signature diversification pass on the
	// personalized feed.
	Diversify bool `koanf:"diversify"`
}

// EventsConfig holds interaction-event pipeline settings.
type EventsConfig struct {
	// Topic is the pub/sub topic interaction events are published to.
	Topic string `koanf:"topic"`

	// PoisonTopic receives events whose handler fails permanently.
	PoisonTopic string `koanf:"poison_topic"`

	// BufferSize is the GoChannel output buffer per subscriber.
	BufferSize int64 `koanf:"buffer_size"`

	// RetryCount and RetryInterval configure handler retry middleware.
	RetryCount    int           `koanf:"retry_count"`
	RetryInterval time.Duration `koanf:"retry_interval"`

	// CloseTimeout bounds router shutdown.
	CloseTimeout time.Duration `koanf:"close_timeout"`
}

// APIConfig holds API pagination, rate limiting and CORS settings.
type APIConfig struct {
	// CatalogPageSize is the protocol page size served per catalog request.
	CatalogPageSize int `koanf:"catalog_page_size"`

	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            7000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		ListService: ListServiceConfig{
			URL:               "https://api.trakt.tv",
			ClientID:          "", // Optional: raises the unauthenticated quota
			PageLimit:         100,
			Timeout:           15 * time.Second,
			RequestsPerSecond: 3,
			Burst:             5,
		},
		MetaService: MetaServiceConfig{
			URL:     "https://v3-cinemeta.strem.io",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			MaxEntries:      1200,
			TTL:             6 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Rows: RowsConfig{
			SmallPoolSize:   50,
			LargePoolSize:   200,
			IntersectionMin: 30,
			RefreshInterval: 30 * time.Minute,
		},
		Rank: RankConfig{
			RatingWeight:     0.7,
			SimilarityWeight: 2.5,
			RecencyWeight:    0.3,
			RecencyBaseYear:  2015,
			RecencyPerYear:   0.03,
			Diversify:        true,
		},
		Events: EventsConfig{
			Topic:         "interaction.events",
			PoisonTopic:   "interaction.poison",
			BufferSize:    256,
			RetryCount:    3,
			RetryInterval: 100 * time.Millisecond,
			CloseTimeout:  30 * time.Second,
		},
		API: APIConfig{
			CatalogPageSize: 20,
			DefaultPageSize: 20,
			MaxPageSize:     100,
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration from defaults, an optional config file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
