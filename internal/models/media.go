// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package models

import "regexp"

// MediaKind identifies the media category of a candidate.
type MediaKind string

const (
	// MediaKindMovie is a feature-length film.
	MediaKindMovie MediaKind = "movie"
	// MediaKindSeries is an episodic show.
	MediaKindSeries MediaKind = "series"
)

// String returns the wire representation of the media kind.
func (k MediaKind) String() string {
	return string(k)
}

// Valid reports whether the kind is one of the supported categories.
func (k MediaKind) Valid() bool {
	return k == MediaKindMovie || k == MediaKindSeries
}

// ParseMediaKind converts a wire string into a MediaKind.
// The boolean is false for anything other than the supported categories.
func ParseMediaKind(s string) (MediaKind, bool) {
	k := MediaKind(s)
	return k, k.Valid()
}

// externalIDPattern matches IMDb-style identifiers ("tt" followed by digits).
// Upstream rows whose identifier does not match are discarded during
// normalization; they indicate upstream data-quality problems, not errors.
var externalIDPattern = regexp.MustCompile(`^tt\d+$`)

// ValidExternalID reports whether id matches the external identifier format
// shared by the ranking-list and metadata services.
func ValidExternalID(id string) bool {
	return externalIDPattern.MatchString(id)
}

// Candidate is the canonical media record flowing through the discovery
// pipeline. The upstream client creates it minimally populated (identifier,
// title, year); the enricher fills poster, description and genres in place;
// afterwards it is read-only. Candidates are rebuilt every row-build cycle
// and never persisted.
type Candidate struct {
	// ID is the external identifier (IMDb-style, "tt" + digits). It is the
	// stable cross-service key for enrichment and deduplication.
	ID string `json:"id"`

	// Title is the display title as reported by the ranking service, or the
	// canonical name once enriched.
	Title string `json:"title"`

	// Year is the release year. Zero means unknown.
	Year int `json:"year,omitempty"`

	// Kind is the media category.
	Kind MediaKind `json:"media_kind"`

	// Poster is the artwork URL. Empty until enriched; items still lacking a
	// poster at presentation time are filtered by the protocol adapter.
	Poster string `json:"poster,omitempty"`

	// Description is the synopsis. Empty until enriched.
	Description string `json:"description,omitempty"`

	// Genres is the ordered genre list assigned by the metadata service.
	Genres []string `json:"genres,omitempty"`

	// Rating is the aggregate critic rating, >= 0.
	Rating float64 `json:"rating,omitempty"`
}

// Row is a named, ordered catalog track. Rows are immutable once built and
// are superseded, never merged, by the next build cycle.
type Row struct {
	// Key identifies the track ("trending", "quality", ...).
	Key string `json:"key"`

	// Label is the display string shown for the track.
	Label string `json:"label"`

	// Items holds the candidates in their ranked order.
	Items []Candidate `json:"items"`
}
