// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curatus/internal/models"
)

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode body %q: %v", rec.Body.String(), err)
	}
}

func TestManifest(t *testing.T) {
	env := newTestEnv()
	handler := env.router.SetupChi()

	rec := get(t, handler, "/manifest.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var m manifest
	decodeBody(t, rec, &m)

	if m.ID != "org.curatus.discovery" {
		t.Errorf("Unexpected manifest id %q", m.ID)
	}
	if len(m.Catalogs) != 4 {
		t.Errorf("Expected 4 catalogs, got %d", len(m.Catalogs))
	}
	if len(m.IDPrefixes) != 1 || m.IDPrefixes[0] != "tt" {
		t.Errorf("Expected idPrefixes [tt], got %v", m.IDPrefixes)
	}
	for _, c := range m.Catalogs {
		if len(c.Extra) != 1 || c.Extra[0].Name != "skip" {
			t.Errorf("Catalog %s: expected skip extra, got %+v", c.ID, c.Extra)
		}
	}
}

func TestCatalog_ServesEnrichedPage(t *testing.T) {
	env := newTestEnv()
	env.lister.set(models.MediaKindMovie, "trending", moviePool(10))
	env.lister.set(models.MediaKindMovie, "popular", moviePool(10))
	handler := env.router.SetupChi()

	rec := get(t, handler, "/catalog/movie/trending.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Metas []protocolMeta `json:"metas"`
	}
	decodeBody(t, rec, &body)

	if len(body.Metas) != 10 {
		t.Fatalf("Expected 10 metas, got %d", len(body.Metas))
	}
	first := body.Metas[0]
	if first.ID != "tt0000001" || first.Type != "movie" {
		t.Errorf("Unexpected first meta %+v", first)
	}
	if first.Poster == "" || first.Description == "" {
		t.Errorf("Expected enriched fields populated, got %+v", first)
	}
	if first.ReleaseInfo != "2021" || first.IMDBRating != "7.4" {
		t.Errorf("Expected release info and rating mapped, got %+v", first)
	}
}

func TestCatalog_PaginatesBySkip(t *testing.T) {
	env := newTestEnv()
	env.lister.set(models.MediaKindMovie, "trending", moviePool(60))
	env.lister.set(models.MediaKindMovie, "popular", moviePool(60))
	handler := env.router.SetupChi()

	rec := get(t, handler, "/catalog/movie/trending/skip=20.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Metas []protocolMeta `json:"metas"`
	}
	decodeBody(t, rec, &body)

	if len(body.Metas) != 20 {
		t.Fatalf("Expected a full page of 20, got %d", len(body.Metas))
	}
	if body.Metas[0].ID != "tt0000021" {
		t.Errorf("Expected page to start at item 21, got %s", body.Metas[0].ID)
	}
}

func TestCatalog_FiltersPosterlessItems(t *testing.T) {
	env := newTestEnv()
	env.looker.failing = map[string]bool{"tt0000002": true}
	env.lister.set(models.MediaKindMovie, "trending", moviePool(3))
	env.lister.set(models.MediaKindMovie, "popular", moviePool(3))
	handler := env.router.SetupChi()

	rec := get(t, handler, "/catalog/movie/trending.json")

	var body struct {
		Metas []protocolMeta `json:"metas"`
	}
	decodeBody(t, rec, &body)

	if len(body.Metas) != 2 {
		t.Fatalf("Expected poster-less item filtered, got %d metas", len(body.Metas))
	}
	for _, m := range body.Metas {
		if m.ID == "tt0000002" {
			t.Error("Expected tt0000002 filtered out for missing poster")
		}
	}
}

func TestCatalog_UnknownTypeOrID(t *testing.T) {
	env := newTestEnv()
	env.lister.set(models.MediaKindMovie, "trending", moviePool(3))
	env.lister.set(models.MediaKindMovie, "popular", moviePool(3))
	handler := env.router.SetupChi()

	for _, path := range []string{
		"/catalog/anime/trending.json",
		"/catalog/movie/unknown-row.json",
	} {
		rec := get(t, handler, path)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected well-formed 200, got %d", path, rec.Code)
		}

		var body struct {
			Metas []protocolMeta `json:"metas"`
		}
		decodeBody(t, rec, &body)
		if len(body.Metas) != 0 {
			t.Errorf("%s: expected empty metas, got %d", path, len(body.Metas))
		}
	}
}

func TestCatalog_EmptyRowFallsBackToFirstNonempty(t *testing.T) {
	env := newTestEnv()
	// Only series trending has content; the movie rows are empty.
	env.lister.set(models.MediaKindSeries, "trending", []models.Candidate{
		{ID: "tt0009001", Title: "Show One", Kind: models.MediaKindSeries},
	})
	handler := env.router.SetupChi()

	rec := get(t, handler, "/catalog/movie/trending.json")

	var body struct {
		Metas []protocolMeta `json:"metas"`
	}
	decodeBody(t, rec, &body)

	if len(body.Metas) != 1 || body.Metas[0].ID != "tt0009001" {
		t.Errorf("Expected fallback to the nonempty series row, got %+v", body.Metas)
	}
}

func TestMeta_EnrichesSingleItem(t *testing.T) {
	env := newTestEnv()
	handler := env.router.SetupChi()

	rec := get(t, handler, "/meta/movie/tt0000001.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body struct {
		Meta protocolMeta `json:"meta"`
	}
	decodeBody(t, rec, &body)

	if body.Meta.ID != "tt0000001" || body.Meta.Name != "Enriched tt0000001" {
		t.Errorf("Unexpected meta %+v", body.Meta)
	}
}

func TestMeta_InvalidID(t *testing.T) {
	env := newTestEnv()
	handler := env.router.SetupChi()

	rec := get(t, handler, "/meta/movie/abc123.json")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for invalid identifier, got %d", rec.Code)
	}
}

func TestMeta_LookupFailure(t *testing.T) {
	env := newTestEnv()
	env.looker.failing = map[string]bool{"tt0000009": true}
	handler := env.router.SetupChi()

	rec := get(t, handler, "/meta/movie/tt0000009.json")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 when lookup fails with no fallback title, got %d", rec.Code)
	}
}

func TestStream_AlwaysEmptyStub(t *testing.T) {
	env := newTestEnv()
	handler := env.router.SetupChi()

	rec := get(t, handler, "/stream/movie/tt0000001.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "{\"streams\":[]}\n" {
		t.Errorf("Expected empty streams stub, got %q", rec.Body.String())
	}
}

func TestParseSkip(t *testing.T) {
	tests := []struct {
		extra string
		want  int
	}{
		{"skip=40.json", 40},
		{"skip=0.json", 0},
		{"skip=abc.json", 0},
		{"skip=-5.json", 0},
		{"genre=drama.json", 0},
		{"", 0},
	}
	for _, tc := range tests {
		if got := parseSkip(tc.extra); got != tc.want {
			t.Errorf("parseSkip(%q): expected %d, got %d", tc.extra, tc.want, got)
		}
	}
}
