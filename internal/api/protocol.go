// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/curatus/internal/models"
	"github.com/tomtom215/curatus/internal/rows"
)

// The discovery protocol surface: a Stremio-style addon serving a manifest,
// paginated catalogs, single-item metadata and a stream stub. Responses are
// raw protocol JSON; the internal APIResponse envelope is not used here.

// protocolMeta is the protocol's media object shape.
type protocolMeta struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	IMDBRating  string   `json:"imdbRating,omitempty"`
}

// manifestCatalog describes one catalog track in the manifest.
type manifestCatalog struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Extra []manifestExtra `json:"extra,omitempty"`
}

type manifestExtra struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired"`
}

// manifest is the addon manifest shape.
type manifest struct {
	ID          string            `json:"id"`
	Version     string            `json:"version"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Resources   []string          `json:"resources"`
	Types       []string          `json:"types"`
	Catalogs    []manifestCatalog `json:"catalogs"`
	IDPrefixes  []string          `json:"idPrefixes"`
}

// catalogKind maps each row key to the protocol type it is served under.
var catalogKind = map[string]models.MediaKind{
	rows.RowKeyMoviePicks:  models.MediaKindMovie,
	rows.RowKeySeriesPicks: models.MediaKindSeries,
	rows.RowKeyTrending:    models.MediaKindMovie,
	rows.RowKeyQuality:     models.MediaKindMovie,
}

// catalogLabels mirrors the row labels for the manifest.
var catalogLabels = map[string]string{
	rows.RowKeyMoviePicks:  "AI picks",
	rows.RowKeySeriesPicks: "Series picks",
	rows.RowKeyTrending:    "Trending now",
	rows.RowKeyQuality:     "Critically rated",
}

// catalogOrder fixes the manifest catalog ordering.
var catalogOrder = []string{
	rows.RowKeyMoviePicks,
	rows.RowKeySeriesPicks,
	rows.RowKeyTrending,
	rows.RowKeyQuality,
}

// Manifest serves GET /manifest.json.
func (h *Handler) Manifest(w http.ResponseWriter, _ *http.Request) {
	catalogs := make([]manifestCatalog, 0, len(catalogOrder))
	for _, key := range catalogOrder {
		catalogs = append(catalogs, manifestCatalog{
			Type:  catalogKind[key].String(),
			ID:    key,
			Name:  catalogLabels[key],
			Extra: []manifestExtra{{Name: "skip", IsRequired: false}},
		})
	}

	writeProtocolJSON(w, http.StatusOK, manifest{
		ID:          "org.curatus.discovery",
		Version:     Version,
		Name:        "Curatus",
		Description: "Personalized media discovery and catalog aggregation",
		Resources:   []string{"catalog", "meta", "stream"},
		Types:       []string{models.MediaKindMovie.String(), models.MediaKindSeries.String()},
		Catalogs:    catalogs,
		IDPrefixes:  []string{"tt"},
	})
}

// Catalog serves GET /catalog/{type}/{id}.json and
// GET /catalog/{type}/{id}/{extra}.json. Unknown types or catalog ids yield a
// well-formed empty page rather than an error; protocol clients treat any
// non-JSON response as addon failure.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	kind, known := models.ParseMediaKind(chi.URLParam(r, "type"))
	rowKey := chi.URLParam(r, "id")
	skip := parseSkip(chi.URLParam(r, "extra"))

	if !known || catalogKind[rowKey] == "" {
		writeProtocolJSON(w, http.StatusOK, map[string][]protocolMeta{"metas": {}})
		return
	}

	// Pages past the small pool need the larger build; the large pool is
	// cached so repeated paging stays cheap.
	wantLarge := skip > 0
	built := h.builder.BuildRows(r.Context(), wantLarge)
	row := rows.SelectRow(built, rowKey)

	metas := make([]protocolMeta, 0, h.cfg.CatalogPageSize)
	withPosters := presentable(row.Items)

	end := skip + h.cfg.CatalogPageSize
	for i := skip; i < end && i < len(withPosters); i++ {
		metas = append(metas, toProtocolMeta(withPosters[i], kind))
	}

	writeProtocolJSON(w, http.StatusOK, map[string][]protocolMeta{"metas": metas})
}

// Meta serves GET /meta/{type}/{id}.json: a single item, enriched through the
// cache-first lookup path.
func (h *Handler) Meta(w http.ResponseWriter, r *http.Request) {
	kind, known := models.ParseMediaKind(chi.URLParam(r, "type"))
	externalID := trimJSONSuffix(chi.URLParam(r, "id"))

	if !known || !models.ValidExternalID(externalID) {
		writeProtocolJSON(w, http.StatusNotFound, map[string]interface{}{"meta": map[string]interface{}{}})
		return
	}

	candidate := h.enricher.Enrich(r.Context(), models.Candidate{
		ID:   externalID,
		Kind: kind,
	})

	if candidate.Title == "" {
		// Lookup failed and there was no upstream title to fall back to.
		writeProtocolJSON(w, http.StatusNotFound, map[string]interface{}{"meta": map[string]interface{}{}})
		return
	}

	writeProtocolJSON(w, http.StatusOK, map[string]protocolMeta{
		"meta": toProtocolMeta(candidate, kind),
	})
}

// Stream serves GET /stream/{type}/{id}.json. Stream resolution is out of
// scope; the stub keeps protocol clients from treating the addon as broken.
func (h *Handler) Stream(w http.ResponseWriter, _ *http.Request) {
	writeProtocolJSON(w, http.StatusOK, map[string][]interface{}{"streams": {}})
}

// presentable filters out items without artwork; the protocol UI renders
// posters only, so a poster-less item shows as a broken tile.
func presentable(items []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, 0, len(items))
	for i := range items {
		if items[i].Poster != "" {
			out = append(out, items[i])
		}
	}
	return out
}

func toProtocolMeta(c models.Candidate, kind models.MediaKind) protocolMeta {
	m := protocolMeta{
		ID:          c.ID,
		Type:        kind.String(),
		Name:        c.Title,
		Poster:      c.Poster,
		Description: c.Description,
		Genres:      c.Genres,
	}
	if c.Year != 0 {
		m.ReleaseInfo = strconv.Itoa(c.Year)
	}
	if c.Rating > 0 {
		m.IMDBRating = strconv.FormatFloat(c.Rating, 'f', 1, 64)
	}
	return m
}

// parseSkip extracts the skip offset from the protocol extra path segment,
// e.g. "skip=40.json". Anything unparsable means page one.
func parseSkip(extra string) int {
	extra = trimJSONSuffix(extra)
	if extra == "" {
		return 0
	}
	const prefix = "skip="
	if len(extra) <= len(prefix) || extra[:len(prefix)] != prefix {
		return 0
	}
	skip, err := strconv.Atoi(extra[len(prefix):])
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}

func trimJSONSuffix(s string) string {
	const suffix = ".json"
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}
