// Package store persists recommendation outputs keyed by session.
package store

import (
	"context"
	"sync"

	recModel "edupath/internal/recommendation/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// InMemory keeps one output per session behind a mutex.
type InMemory struct {
	mu      sync.RWMutex
	outputs map[id.SessionID]*recModel.Output
}

// NewInMemory creates an empty recommendation store.
func NewInMemory() *InMemory {
	return &InMemory{outputs: make(map[id.SessionID]*recModel.Output)}
}

// Save stores the session's output, replacing any previous run.
func (s *InMemory) Save(_ context.Context, output *recModel.Output) error {
	if output == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "output is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *output
	clone.Recommendations = append([]recModel.ScoredRecommendation(nil), output.Recommendations...)
	s.outputs[output.SessionID] = &clone
	return nil
}

// GetBySession returns the session's output, or CodeNotFound.
func (s *InMemory) GetBySession(_ context.Context, sessionID id.SessionID) (*recModel.Output, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	output, ok := s.outputs[sessionID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "recommendations not found for session")
	}
	clone := *output
	clone.Recommendations = append([]recModel.ScoredRecommendation(nil), output.Recommendations...)
	return &clone, nil
}
