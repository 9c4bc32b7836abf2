// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

/*
client.go - Ranking-List Service REST Client

This file implements a REST client for the external ranking-list service.
It fetches ranked lists of candidate titles (trending, popular) and
normalizes the raw rows into the canonical Candidate shape.

The service is unauthenticated-capable; a client credential header raises
the request quota when configured.
*/

package listservice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// MaxPageLimit is the upstream service's page-size maximum. Requests asking
// for more are capped here before the call goes out.
const MaxPageLimit = 100

// Lister fetches ranked candidate lists. The row builder depends on this
// interface so tests can substitute fakes for the HTTP client.
//
// FetchList never returns an error: on any upstream failure the result is an
// empty slice, which callers must treat as "temporarily unavailable" rather
// than "definitively no results".
type Lister interface {
	FetchList(ctx context.Context, kind models.MediaKind, listPath string, limit, page int) []models.Candidate
}

// Client provides access to the ranking-list service REST API.
type Client struct {
	baseURL    string
	clientID   string
	pageLimit  int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// listRow is one raw row from the ranking-list service. Trending endpoints
// nest the title under a "movie" or "show" object; popular endpoints return
// the fields flat. Both shapes are handled here.
type listRow struct {
	Movie *listEntry `json:"movie,omitempty"`
	Show  *listEntry `json:"show,omitempty"`

	// Flat shape (popular endpoints)
	Title  string  `json:"title,omitempty"`
	Year   int     `json:"year,omitempty"`
	IDs    listIDs `json:"ids,omitempty"`
	Rating float64 `json:"rating,omitempty"`
}

// listEntry is the nested title object carried by trending rows.
type listEntry struct {
	Title  string  `json:"title"`
	Year   int     `json:"year,omitempty"`
	IDs    listIDs `json:"ids"`
	Rating float64 `json:"rating,omitempty"`
}

// listIDs holds the external identifiers attached to a row. Only the
// IMDb-style identifier is used; the others exist on the wire but are
// irrelevant here.
type listIDs struct {
	IMDB  string `json:"imdb,omitempty"`
	Slug  string `json:"slug,omitempty"`
	Trakt int    `json:"trakt,omitempty"`
}

// NewClient creates a ranking-list service client from configuration.
func NewClient(cfg *config.ListServiceConfig) *Client {
	pageLimit := cfg.PageLimit
	if pageLimit <= 0 || pageLimit > MaxPageLimit {
		pageLimit = MaxPageLimit
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 3
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimSuffix(cfg.URL, "/"),
		clientID:  cfg.ClientID,
		pageLimit: pageLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchList retrieves one page of a ranked list and normalizes it.
// The limit is capped at the upstream page-size maximum regardless of the
// caller's request. Any transport or status failure yields an empty slice.
func (c *Client) FetchList(ctx context.Context, kind models.MediaKind, listPath string, limit, page int) []models.Candidate {
	rows, err := c.fetchRaw(ctx, kind, listPath, limit, page)
	if err != nil {
		logging.Debug().
			Err(err).
			Str("kind", kind.String()).
			Str("list", listPath).
			Msg("Ranking-list fetch failed, returning empty pool")
		return []models.Candidate{}
	}
	return c.normalize(rows, kind)
}

// fetchRaw issues one request per (kind, listPath, page) and decodes the raw
// rows. Errors are returned to give the circuit breaker a real failure
// signal; FetchList absorbs them into the empty-pool fallback.
func (c *Client) fetchRaw(ctx context.Context, kind models.MediaKind, listPath string, limit, page int) ([]listRow, error) {
	if limit <= 0 || limit > c.pageLimit {
		limit = c.pageLimit
	}
	if page < 1 {
		page = 1
	}

	endpoint := fmt.Sprintf("%s/%s/%s?page=%d&limit=%d",
		c.baseURL, kindPath(kind), strings.Trim(listPath, "/"), page, limit)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, endpoint)
	metrics.RecordUpstreamRequest("list", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("ranking-list request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("ranking-list returned status %d", resp.StatusCode)
	}

	var rows []listRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode ranking-list rows: %w", err)
	}

	return rows, nil
}

// normalize converts raw rows into Candidates. Rows that do not resolve to
// exactly one valid external identifier are silently dropped; this is an
// upstream data-quality filter, not an application failure.
func (c *Client) normalize(rows []listRow, kind models.MediaKind) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(rows))
	dropped := 0

	for i := range rows {
		entry := rows[i].entry()
		if entry == nil || !models.ValidExternalID(entry.IDs.IMDB) {
			dropped++
			continue
		}

		candidates = append(candidates, models.Candidate{
			ID:     entry.IDs.IMDB,
			Title:  entry.Title,
			Year:   entry.Year,
			Kind:   kind,
			Rating: entry.Rating,
		})
	}

	metrics.RecordDroppedRows("list", dropped)
	if dropped > 0 {
		logging.Debug().
			Int("dropped", dropped).
			Int("kept", len(candidates)).
			Msg("Dropped ranking-list rows with invalid identifiers")
	}

	return candidates
}

// entry resolves the title object for a row regardless of wire shape.
func (r *listRow) entry() *listEntry {
	if r.Movie != nil {
		return r.Movie
	}
	if r.Show != nil {
		return r.Show
	}
	if r.Title != "" || r.IDs.IMDB != "" {
		return &listEntry{Title: r.Title, Year: r.Year, IDs: r.IDs, Rating: r.Rating}
	}
	return nil
}

// doRequest performs an HTTP GET request against the ranking-list service.
func (c *Client) doRequest(ctx context.Context, fullURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("trakt-api-version", "2")
	if c.clientID != "" {
		req.Header.Set("trakt-api-key", c.clientID)
	}

	return c.httpClient.Do(req)
}

// kindPath maps a media kind to the service's URL path segment.
func kindPath(kind models.MediaKind) string {
	if kind == models.MediaKindSeries {
		return "shows"
	}
	return "movies"
}

// PageLimit reports the effective page-size cap, exposed for tests.
func (c *Client) PageLimit() int {
	return c.pageLimit
}

// Ensure Client implements Lister
var _ Lister = (*Client)(nil)
