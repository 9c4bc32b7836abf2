// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package services

import (
	"context"
	"errors"
	"fmt"
)

// EventPipeline matches the lifecycle of the interaction-event pipeline.
type EventPipeline interface {
	Run(ctx context.Context) error
	Close() error
}

// PipelineService runs the event pipeline under supervision. The pipeline's
// router blocks in Run until the context is canceled; Close releases its
// subscriptions afterwards.
type PipelineService struct {
	pipeline EventPipeline
	name     string
}

// NewPipelineService wraps the event pipeline as a supervised service.
func NewPipelineService(p EventPipeline) *PipelineService {
	return &PipelineService{
		pipeline: p,
		name:     "event-pipeline",
	}
}

// Serve implements suture.Service.
func (s *PipelineService) Serve(ctx context.Context) error {
	err := s.pipeline.Run(ctx)

	if closeErr := s.pipeline.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("event pipeline stopped: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// String implements fmt.Stringer.
func (s *PipelineService) String() string {
	return s.name
}
