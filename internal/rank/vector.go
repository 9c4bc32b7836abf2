// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package rank

import (
	"strings"

	"github.com/tomtom215/curatus/internal/models"
)

// BuildVector folds one user's interaction history into an interest vector.
//
// Each event contributes its kind's base weight scaled by (1 + progress) to
// every tag it carries. A multi-tag event gives each tag the full weight, not
// a share of it; that keeps a "drama|thriller" completion as strong a drama
// signal as a pure drama one. Tags are lowercased so the vector keys line up
// with the genre tags assigned during enrichment. Event age is ignored: the
// full history counts equally, however old.
func BuildVector(events []models.InteractionEvent) models.InterestVector {
	vector := make(models.InterestVector)
	for i := range events {
		ev := &events[i]
		weight := ev.Kind.BaseWeight() * (1 + ev.ProgressFraction)
		for _, tag := range ev.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			vector[tag] += weight
		}
	}
	return vector
}
