// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/curatus/internal/models"
)

type countingBuilder struct {
	mu        sync.Mutex
	builds    int
	largePool int
}

func (c *countingBuilder) BuildRows(_ context.Context, wantLargePool bool) []models.Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builds++
	if wantLargePool {
		c.largePool++
	}
	return []models.Row{{Key: "trending", Items: []models.Candidate{{ID: "tt0000001"}}}}
}

func (c *countingBuilder) buildCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}

func TestRefresherService_BuildsImmediatelyAndOnTicks(t *testing.T) {
	builder := &countingBuilder{}
	svc := NewRefresherService(builder, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && builder.buildCount() < 3 {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-errCh

	if builder.buildCount() < 3 {
		t.Errorf("Expected at least 3 builds (1 immediate + ticks), got %d", builder.buildCount())
	}

	builder.mu.Lock()
	defer builder.mu.Unlock()
	if builder.largePool != builder.builds {
		t.Errorf("Expected every refresh to build the large pool, got %d of %d", builder.largePool, builder.builds)
	}
}

func TestRefresherService_StopsOnCancel(t *testing.T) {
	builder := &countingBuilder{}
	svc := NewRefresherService(builder, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop on cancellation")
	}

	if builder.buildCount() != 1 {
		t.Errorf("Expected only the immediate build with a long interval, got %d", builder.buildCount())
	}
}
