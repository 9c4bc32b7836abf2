// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateListService(); err != nil {
		return err
	}

	if err := c.validateMetaService(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateRows(); err != nil {
		return err
	}

	if err := c.validateEvents(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server settings.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

// validateListService validates the ranking-list service settings.
func (c *Config) validateListService() error {
	if c.ListService.URL == "" {
		return fmt.Errorf("LIST_SERVICE_URL is required")
	}
	if err := validateHTTPURL(c.ListService.URL, "LIST_SERVICE_URL"); err != nil {
		return err
	}
	if c.ListService.PageLimit < 1 || c.ListService.PageLimit > 100 {
		return fmt.Errorf("LIST_SERVICE_PAGE_LIMIT must be between 1 and 100, got %d", c.ListService.PageLimit)
	}
	if c.ListService.Timeout <= 0 {
		return fmt.Errorf("LIST_SERVICE_TIMEOUT must be positive, got %v", c.ListService.Timeout)
	}
	if c.ListService.RequestsPerSecond <= 0 {
		return fmt.Errorf("LIST_SERVICE_RPS must be positive, got %v", c.ListService.RequestsPerSecond)
	}
	if c.ListService.Burst < 1 {
		return fmt.Errorf("LIST_SERVICE_BURST must be at least 1, got %d", c.ListService.Burst)
	}
	return nil
}

// validateMetaService validates the metadata service settings.
func (c *Config) validateMetaService() error {
	if c.MetaService.URL == "" {
		return fmt.Errorf("META_SERVICE_URL is required")
	}
	if err := validateHTTPURL(c.MetaService.URL, "META_SERVICE_URL"); err != nil {
		return err
	}
	if c.MetaService.Timeout <= 0 {
		return fmt.Errorf("META_SERVICE_TIMEOUT must be positive, got %v", c.MetaService.Timeout)
	}
	return nil
}

// validateCache validates the TTL cache settings.
func (c *Config) validateCache() error {
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive, got %v", c.Cache.CleanupInterval)
	}
	return nil
}

// validateRows validates row-building settings.
func (c *Config) validateRows() error {
	if c.Rows.SmallPoolSize < 1 {
		return fmt.Errorf("ROWS_SMALL_POOL_SIZE must be positive, got %d", c.Rows.SmallPoolSize)
	}
	if c.Rows.LargePoolSize < c.Rows.SmallPoolSize {
		return fmt.Errorf("ROWS_LARGE_POOL_SIZE (%d) must be at least ROWS_SMALL_POOL_SIZE (%d)",
			c.Rows.LargePoolSize, c.Rows.SmallPoolSize)
	}
	if c.Rows.IntersectionMin < 1 {
		return fmt.Errorf("ROWS_INTERSECTION_MIN must be positive, got %d", c.Rows.IntersectionMin)
	}
	return nil
}

// validateEvents validates event pipeline settings.
func (c *Config) validateEvents() error {
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required")
	}
	if c.Events.PoisonTopic == "" {
		return fmt.Errorf("EVENTS_POISON_TOPIC is required")
	}
	if c.Events.Topic == c.Events.PoisonTopic {
		return fmt.Errorf("EVENTS_TOPIC and EVENTS_POISON_TOPIC must differ, both are %q", c.Events.Topic)
	}
	if c.Events.BufferSize < 0 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must not be negative, got %d", c.Events.BufferSize)
	}
	if c.Events.RetryCount < 0 {
		return fmt.Errorf("EVENTS_RETRY_COUNT must not be negative, got %d", c.Events.RetryCount)
	}
	if c.Events.CloseTimeout <= 0 {
		return fmt.Errorf("EVENTS_CLOSE_TIMEOUT must be positive, got %v", c.Events.CloseTimeout)
	}
	return nil
}

// validateAPI validates API pagination and rate limit settings.
func (c *Config) validateAPI() error {
	if c.API.CatalogPageSize < 1 {
		return fmt.Errorf("API_CATALOG_PAGE_SIZE must be positive, got %d", c.API.CatalogPageSize)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be positive, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must be at least API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.API.RateLimitWindow)
	}
	return nil
}

// validateLogging validates logging settings.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// validateHTTPURL checks that a URL is parseable and uses http or https.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", name)
	}
	return nil
}
