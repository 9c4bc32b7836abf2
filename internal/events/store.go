// Curatus - Personalized Media Discovery and Catalog Aggregation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatus

package events

import (
	"sync"

	"github.com/tomtom215/curatus/internal/models"
)

// Store is the interaction-event log. Events are append-only; the store never
// mutates or deletes them. Implementations must be safe for concurrent use.
type Store interface {
	// Append adds one event to the log.
	Append(event models.InteractionEvent) error

	// ListByUser returns the full event history for one user, in append
	// order. An unknown user yields an empty slice.
	ListByUser(userID string) []models.InteractionEvent
}

// MemoryStore keeps the event log in process memory. Growth is unbounded and
// everything is lost on restart; suitable for a single-process deployment
// where interest vectors are rebuilt from scratch each request anyway. A
// durable Store can replace it without touching the vector or ranking code.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]models.InteractionEvent
}

// NewMemoryStore creates an empty in-memory event log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[string][]models.InteractionEvent),
	}
}

// Append adds one event to the log. It never fails.
func (s *MemoryStore) Append(event models.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[event.UserID] = append(s.byUser[event.UserID], event)
	return nil
}

// ListByUser returns a copy of one user's history in append order.
func (s *MemoryStore) ListByUser(userID string) []models.InteractionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byUser[userID]
	out := make([]models.InteractionEvent, len(history))
	copy(out, history)
	return out
}

// Len returns the total number of stored events across all users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, history := range s.byUser {
		total += len(history)
	}
	return total
}

// Users returns the number of distinct users with at least one event.
func (s *MemoryStore) Users() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}
