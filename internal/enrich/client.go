// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
client.go - Metadata Service REST Client

This file implements a REST client for the external metadata lookup
service. It resolves an external identifier into a display record
(canonical name, poster, description, genres). No credential is required.
*/

package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// Looker resolves one external identifier into a metadata record.
// The enricher depends on this interface so tests can substitute fakes.
type Looker interface {
	Lookup(ctx context.Context, kind models.MediaKind, externalID string) (*MetaRecord, error)
}

// Client provides access to the metadata service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// metaResponse is the raw wire envelope from the metadata service.
type metaResponse struct {
	Meta *metaPayload `json:"meta"`
}

// metaPayload is the raw metadata record on the wire.
type metaPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Poster      string   `json:"poster,omitempty"`
	Background  string   `json:"background,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	Year        int      `json:"year,omitempty"`
	IMDBRating  string   `json:"imdbRating,omitempty"`
}

// MetaRecord is a parsed metadata record ready to merge into a Candidate.
type MetaRecord struct {
	Name        string
	Description string
	Poster      string
	Genres      []string
	Year        int
	Rating      float64
}

// NewClient creates a metadata service client from configuration.
func NewClient(cfg *config.MetaServiceConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup fetches the metadata record for one external identifier.
// Errors are returned to the enricher, which absorbs them by keeping the
// original candidate; they never propagate past EnrichMany.
func (c *Client) Lookup(ctx context.Context, kind models.MediaKind, externalID string) (*MetaRecord, error) {
	endpoint := fmt.Sprintf("%s/meta/%s/%s.json", c.baseURL, kind.String(), externalID)

	start := time.Now()
	resp, err := c.doRequest(ctx, endpoint)
	metrics.RecordUpstreamRequest("meta", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("metadata service returned status %d", resp.StatusCode)
	}

	var envelope metaResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode metadata record: %w", err)
	}
	if envelope.Meta == nil {
		return nil, fmt.Errorf("metadata response for %s carried no record", externalID)
	}

	return envelope.Meta.parse(), nil
}

// doRequest performs an HTTP GET request against the metadata service.
func (c *Client) doRequest(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// parse converts the wire payload into a MetaRecord. The poster falls back
// to the background artwork, releaseInfo to the plain year field, and the
// rating string is parsed leniently (absent or malformed means zero).
func (p *metaPayload) parse() *MetaRecord {
	rec := &MetaRecord{
		Name:        p.Name,
		Description: p.Description,
		Poster:      p.Poster,
		Genres:      p.Genres,
		Year:        p.Year,
	}

	if rec.Poster == "" {
		rec.Poster = p.Background
	}

	if rec.Year == 0 && p.ReleaseInfo != "" {
		// releaseInfo may be a range like "2015-2018"; the leading year wins
		lead := p.ReleaseInfo
		if idx := strings.IndexAny(lead, "-–"); idx > 0 {
			lead = lead[:idx]
		}
		if year, err := strconv.Atoi(strings.TrimSpace(lead)); err == nil {
			rec.Year = year
		}
	}

	if p.IMDBRating != "" {
		if rating, err := strconv.ParseFloat(p.IMDBRating, 64); err == nil && rating >= 0 {
			rec.Rating = rating
		}
	}

	return rec
}

// Ensure Client implements Looker
var _ Looker = (*Client)(nil)
