// Package store persists student profiles. The in-memory implementation
// backs tests and single-node deployments; PostgresStore is the production
// path.
package store

import (
	"context"
	"sync"

	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// InMemory keeps profiles keyed by session ID behind a mutex so concurrent
// pipeline runs never share an unguarded handle.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.SessionID]*studentModel.Profile
}

// NewInMemory creates an empty profile store.
func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[id.SessionID]*studentModel.Profile)}
}

// Upsert stores a copy of the profile.
func (s *InMemory) Upsert(_ context.Context, profile *studentModel.Profile) error {
	if profile == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *profile
	s.profiles[profile.SessionID] = &clone
	return nil
}

// GetBySession returns a copy of the stored profile or CodeNotFound.
func (s *InMemory) GetBySession(_ context.Context, sessionID id.SessionID) (*studentModel.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[sessionID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "student profile not found")
	}
	clone := *profile
	return &clone, nil
}
