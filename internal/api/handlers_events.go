// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/metrics"
	"github.com/tomtom215/curatus/internal/models"
	"github.com/tomtom215/curatus/internal/rank"
)

// IngestEvent godoc
// @Summary Ingest an interaction event
// @Description Validates one interaction event and publishes it to the event pipeline. Storage is asynchronous.
// @Tags events
// @Accept json
// @Produce json
// @Param event body models.InteractionEvent true "Interaction event"
// @Success 202 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/v1/events [post]
func (h *Handler) IngestEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var event models.InteractionEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		metrics.RecordEventRejected("malformed_json")
		rw.BadRequest("Request body is not valid JSON")
		return
	}

	if err := h.validate.Struct(&event); err != nil {
		metrics.RecordEventRejected("validation")
		rw.ValidationError("Event failed validation", validationDetails(err))
		return
	}

	if !models.ValidExternalID(event.SubjectID) {
		metrics.RecordEventRejected("invalid_subject")
		rw.BadRequest("subject_id must be an IMDb-style identifier (tt followed by digits)")
		return
	}

	if err := h.publisher.Publish(event); err != nil {
		logging.Error().Err(err).Str("user_id", event.UserID).Msg("Failed to publish interaction event")
		rw.InternalError("Event could not be queued")
		return
	}

	metrics.RecordEventIngested()
	rw.Accepted(map[string]string{"status": "queued"})
}

// feedRow is one ranked row in the personalized feed response.
type feedRow struct {
	Key   string             `json:"key"`
	Label string             `json:"label"`
	Items []models.Candidate `json:"items"`
}

// Feed godoc
// @Summary Personalized feed
// @Description Builds the current rows, ranks the combined pool against the user's interest vector and returns one page.
// @Tags feed
// @Produce json
// @Param userId path string true "User identifier"
// @Param page query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Success 200 {object} APIResponse
// @Router /api/v1/feed/{userId} [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		rw.BadRequest("User identifier is required")
		return
	}

	page, pageSize := h.pagination(r)

	built := h.builder.BuildRows(r.Context(), false)
	pool := flattenRows(built)

	vector := rank.BuildVector(h.store.ListByUser(userID))
	ranked := h.ranker.Rank(pool, vector, true)

	start := (page - 1) * pageSize
	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}

	rw.SuccessWithPagination(feedRow{
		Key:   "feed",
		Label: "For you",
		Items: ranked[start:end],
	}, &PaginationMeta{
		Total:    int64(len(ranked)),
		Count:    end - start,
		Page:     page,
		PageSize: pageSize,
		HasMore:  end < len(ranked),
	})
}

// Rows godoc
// @Summary Current catalog rows
// @Description Returns the current small-pool rows as built, for debugging and operations.
// @Tags rows
// @Produce json
// @Success 200 {object} APIResponse
// @Router /api/v1/rows [get]
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	built := h.builder.BuildRows(r.Context(), false)
	NewResponseWriter(w, r).Success(built)
}

// pagination reads page/page_size query params with defaults and bounds.
func (h *Handler) pagination(r *http.Request) (page, pageSize int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	pageSize = h.cfg.DefaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > h.cfg.MaxPageSize {
		pageSize = h.cfg.MaxPageSize
	}
	return page, pageSize
}

// flattenRows merges all rows into a single deduplicated pool for ranking.
// The movie-picks and trending rows intentionally share content; without the
// dedup the feed would show every shared title twice.
func flattenRows(built []models.Row) []models.Candidate {
	seen := make(map[string]struct{})
	pool := make([]models.Candidate, 0, 64)
	for i := range built {
		for j := range built[i].Items {
			id := built[i].Items[j].ID
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			pool = append(pool, built[i].Items[j])
		}
	}
	return pool
}

// validationDetails flattens validator errors into a field → rule map.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return details
}
