// Package board holds the client-side mirror of the task collection, the
// three-column Kanban projection over it, and the transition validator.
package board

import (
	"sort"
	"sync"

	"github.com/aharoni/caseboard/internal/model"
)

// Store is the authoritative-mirrored task collection. The server is the
// source of truth: the only writers are the full-refetch replacement and
// the single optimistic status move, both driven by the sync engine.
// Reads may happen concurrently with pending writes.
type Store struct {
	mu       sync.RWMutex
	tasks    map[string]model.Task
	inFlight map[string]bool
}

// NewStore creates an empty task store.
func NewStore() *Store {
	return &Store{
		tasks:    make(map[string]model.Task),
		inFlight: make(map[string]bool),
	}
}

// Replace swaps the whole collection for the server's latest view.
// This is the reconciliation step: any optimistic state not confirmed by
// the server is discarded here.
func (s *Store) Replace(tasks []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		s.tasks[t.ID] = t
	}
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	return t, ok
}

// All returns every task, ordered by due date then creation time so the
// projection is stable across refetches.
func (s *Store) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// SetStatus applies an optimistic status change so the projection reflects
// a move before the server confirms it. Returns false when the task is
// unknown.
func (s *Store) SetStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	t.Status = status
	s.tasks[id] = t
	return true
}

// MarkInFlight records that a status transition for the task is awaiting
// reconciliation. Returns false when one is already pending, in which case
// the caller must suppress the new transition.
func (s *Store) MarkInFlight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[id] {
		return false
	}
	s.inFlight[id] = true
	return true
}

// ClearInFlight marks the task's transition as reconciled.
func (s *Store) ClearInFlight(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, id)
}

// InFlight reports whether a transition for the task is awaiting
// reconciliation.
func (s *Store) InFlight(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight[id]
}

// AnyInFlight reports whether any transition is awaiting reconciliation.
// Background refetches are deferred while one is, so a replacement cannot
// clobber an optimistic move whose commit has not settled.
func (s *Store) AnyInFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inFlight) > 0
}
