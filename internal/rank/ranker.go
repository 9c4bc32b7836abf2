// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package rank

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/curatus/internal/config"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
)

// Ranker orders a candidate pool by per-user relevance. It is stateless and
// safe for concurrent use; all user state arrives as the interest vector.
type Ranker struct {
	cfg config.RankConfig
}

// NewRanker creates a ranker with the given scoring weights. A zero config
// gets the canonical formula weights.
func NewRanker(cfg config.RankConfig) *Ranker {
	if cfg.RatingWeight == 0 && cfg.SimilarityWeight == 0 && cfg.RecencyWeight == 0 {
		cfg.RatingWeight = 0.7
		cfg.SimilarityWeight = 2.5
		cfg.RecencyWeight = 0.3
		cfg.RecencyBaseYear = 2015
		cfg.RecencyPerYear = 0.03
		cfg.Diversify = true
	}
	return &Ranker{cfg: cfg}
}

// Rank returns the candidates ordered by descending relevance score for the
// user described by vector. The input slice is not modified. The sort is
// stable: candidates with equal scores keep their input order, so repeated
// calls over the same pool are deterministic.
//
// With diversify set, a single reordering pass follows the sort: the first
// item of each distinct genre signature is pulled to the front, and the rest
// of the ranking follows unchanged. One representative per genre combination
// surfaces early without discarding anything.
func (r *Ranker) Rank(candidates []models.Candidate, vector models.InterestVector, diversify bool) []models.Candidate {
	start := time.Now()

	type scored struct {
		c models.Candidate
		s float64
	}
	pool := make([]scored, len(candidates))
	for i := range candidates {
		pool[i] = scored{c: candidates[i], s: r.score(&candidates[i], vector)}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].s > pool[j].s
	})

	ranked := make([]models.Candidate, len(pool))
	for i := range pool {
		ranked[i] = pool[i].c
	}

	if diversify {
		ranked = diversifyBySignature(ranked)
	}

	metrics.RecordRank(len(ranked), time.Since(start))
	return ranked
}

// score computes the relevance of one candidate to one user.
func (r *Ranker) score(c *models.Candidate, vector models.InterestVector) float64 {
	similarity := cosineSimilarity(vector, tagVector(c.Genres))
	recency := 1.0
	if c.Year != 0 {
		recency = 1 + float64(c.Year-r.cfg.RecencyBaseYear)*r.cfg.RecencyPerYear
	}
	return c.Rating*r.cfg.RatingWeight +
		similarity*r.cfg.SimilarityWeight +
		recency*r.cfg.RecencyWeight
}

// tagVector builds a unit-weight vector over a candidate's lowercase genres.
func tagVector(genres []string) models.InterestVector {
	v := make(models.InterestVector, len(genres))
	for _, g := range genres {
		v[strings.ToLower(g)] = 1.0
	}
	return v
}

// cosineSimilarity computes the cosine of the angle between two sparse tag
// vectors over the union of their keys. Either vector having zero magnitude
// yields 0 rather than dividing by zero.
func cosineSimilarity(a, b models.InterestVector) float64 {
	var dot, magA, magB float64
	for key, av := range a {
		magA += av * av
		if bv, ok := b[key]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		magB += bv * bv
	}

	denom := math.Sqrt(magA) * math.Sqrt(magB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// diversifyBySignature walks the score-sorted slice once, promoting the first
// item of each distinct genre signature into a diverse head, then appends the
// remaining items in their original sorted order.
//
// The signature joins genres in their enrichment-assigned order, so the same
// genre set in a different order counts as a different signature. That
// matches the long-standing production behavior and is kept deliberately.
func diversifyBySignature(ranked []models.Candidate) []models.Candidate {
	if len(ranked) < 2 {
		return ranked
	}

	seen := make(map[string]struct{}, len(ranked))
	head := make([]models.Candidate, 0, len(ranked))
	placed := make([]bool, len(ranked))

	for i := range ranked {
		sig := strings.Join(ranked[i].Genres, "|")
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}
		head = append(head, ranked[i])
		placed[i] = true
	}

	for i := range ranked {
		if !placed[i] {
			head = append(head, ranked[i])
		}
	}
	return head
}
