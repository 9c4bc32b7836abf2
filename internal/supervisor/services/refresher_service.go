// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package services

import (
	"context"
	"time"

	"github.com/tomtom215/curatus/internal/logging"
	"github.com/tomtom215/curatus/internal/models"
)

// RowBuilder is the row-building dependency of the refresher.
type RowBuilder interface {
	BuildRows(ctx context.Context, wantLargePool bool) []models.Row
}

// RefresherService rebuilds the large row pool on a fixed interval so the
// cache stays warm and catalog requests rarely pay the upstream fetch cost.
// The first build runs immediately on start.
type RefresherService struct {
	builder  RowBuilder
	interval time.Duration
	name     string
}

// NewRefresherService creates the background row refresher.
func NewRefresherService(builder RowBuilder, interval time.Duration) *RefresherService {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &RefresherService{
		builder:  builder,
		interval: interval,
		name:     "row-refresher",
	}
}

// Serve implements suture.Service.
func (r *RefresherService) Serve(ctx context.Context) error {
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *RefresherService) refresh(ctx context.Context) {
	start := time.Now()
	rows := r.builder.BuildRows(ctx, true)

	total := 0
	for i := range rows {
		total += len(rows[i].Items)
	}
	logging.Debug().
		Int("rows", len(rows)).
		Int("items", total).
		Dur("elapsed", time.Since(start)).
		Msg("Background row refresh complete")
}

// String implements fmt.Stringer.
func (r *RefresherService) String() string {
	return r.name
}
