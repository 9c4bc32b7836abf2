// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package models

// InteractionKind classifies a user-item interaction for implicit feedback.
// Kinds arrive from clients as free-form strings; unrecognized kinds are kept
// and contribute the default base weight rather than being rejected.
type InteractionKind string

const (
	// InteractionComplete indicates the user finished the title.
	InteractionComplete InteractionKind = "complete"
	// InteractionLike is an explicit positive signal.
	InteractionLike InteractionKind = "like"
	// InteractionStart indicates playback began.
	InteractionStart InteractionKind = "start"
	// InteractionAbandon indicates playback was abandoned early.
	InteractionAbandon InteractionKind = "abandon"
)

// BaseWeight returns the interest weight contributed by this interaction kind
// before the progress multiplier is applied. Negative weights push a user's
// vector away from the tags involved.
func (k InteractionKind) BaseWeight() float64 {
	switch k {
	case InteractionComplete:
		return 3.0
	case InteractionLike:
		return 2.5
	case InteractionStart:
		return 1.0
	case InteractionAbandon:
		return -0.5
	default:
		return 0.5
	}
}

// InteractionEvent is one timestamped user-item interaction. Events are
// append-only per user for the lifetime of the process; the in-memory store
// never mutates or deletes them.
type InteractionEvent struct {
	// UserID identifies the user the event belongs to.
	UserID string `json:"user_id" validate:"required"`

	// SubjectID is the external identifier of the media item involved.
	SubjectID string `json:"subject_id" validate:"required"`

	// Kind classifies the interaction. Unrecognized kinds are accepted.
	Kind InteractionKind `json:"kind" validate:"required"`

	// MediaKind is the media category of the subject.
	MediaKind MediaKind `json:"media_kind" validate:"required,oneof=movie series"`

	// ProgressFraction is how far through the title the user was, in [0, 1].
	ProgressFraction float64 `json:"progress_fraction" validate:"gte=0,lte=1"`

	// TimestampMs is the client-reported event time in Unix milliseconds.
	TimestampMs int64 `json:"timestamp_ms" validate:"required,gt=0"`

	// Tags are the content tags (usually genres) attached to the subject at
	// interaction time. Each tag receives the event's full weight.
	Tags []string `json:"tags,omitempty"`
}

// InterestVector maps a lowercase content tag to its accumulated interest
// weight for one user. Weights may be negative. The vector is derived state,
// recomputed from the user's full event history on each personalization
// request, and never stored.
type InterestVector map[string]float64
