// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package events

import (
	"fmt"
	"sync"
	"testing"

	"github.com/tomtom215/curatus/internal/models"
)

func TestMemoryStore_AppendAndList(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 3; i++ {
		err := store.Append(models.InteractionEvent{
			UserID:      "u1",
			SubjectID:   fmt.Sprintf("tt%07d", i+1),
			Kind:        models.InteractionStart,
			MediaKind:   models.MediaKindMovie,
			TimestampMs: int64(1000 + i),
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	history := store.ListByUser("u1")
	if len(history) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(history))
	}
	for i := range history {
		if history[i].TimestampMs != int64(1000+i) {
			t.Errorf("Position %d: expected append order preserved, got ts %d", i, history[i].TimestampMs)
		}
	}
}

func TestMemoryStore_UnknownUser(t *testing.T) {
	store := NewMemoryStore()

	history := store.ListByUser("nobody")
	if history == nil || len(history) != 0 {
		t.Errorf("Expected empty slice for unknown user, got %+v", history)
	}
}

func TestMemoryStore_IsolatesUsers(t *testing.T) {
	store := NewMemoryStore()

	store.Append(models.InteractionEvent{UserID: "u1", SubjectID: "tt0000001"})
	store.Append(models.InteractionEvent{UserID: "u2", SubjectID: "tt0000002"})

	if got := len(store.ListByUser("u1")); got != 1 {
		t.Errorf("Expected 1 event for u1, got %d", got)
	}
	if store.Users() != 2 {
		t.Errorf("Expected 2 users, got %d", store.Users())
	}
	if store.Len() != 2 {
		t.Errorf("Expected 2 total events, got %d", store.Len())
	}
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	store.Append(models.InteractionEvent{UserID: "u1", SubjectID: "tt0000001"})

	history := store.ListByUser("u1")
	history[0].SubjectID = "mutated"

	if store.ListByUser("u1")[0].SubjectID != "tt0000001" {
		t.Error("Expected stored events untouched by caller mutation")
	}
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.Append(models.InteractionEvent{
					UserID:    fmt.Sprintf("u%d", g%3),
					SubjectID: "tt0000001",
					Kind:      models.InteractionStart,
				})
			}
		}(g)
	}
	wg.Wait()

	if store.Len() != 1000 {
		t.Errorf("Expected 1000 events after concurrent appends, got %d", store.Len())
	}
}
