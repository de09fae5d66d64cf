// Package store persists pipeline sessions. Sessions are short-lived state;
// both backends expire them after the configured retention.
package store

import (
	"context"
	"sync"
	"time"

	sessionModel "edupath/internal/session/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

type memoryEntry struct {
	session   sessionModel.Session
	expiresAt time.Time
}

// InMemory holds sessions behind a mutex, evicting expired entries lazily on
// access.
type InMemory struct {
	mu        sync.RWMutex
	sessions  map[id.SessionID]memoryEntry
	retention time.Duration
	now       func() time.Time
}

// MemoryOption configures the in-memory store.
type MemoryOption func(*InMemory)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemory) { s.now = now }
}

// NewInMemory creates a session store expiring entries after retention.
func NewInMemory(retention time.Duration, opts ...MemoryOption) *InMemory {
	s := &InMemory{
		sessions:  make(map[id.SessionID]memoryEntry),
		retention: retention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores or replaces the session and resets its expiry.
func (s *InMemory) Put(_ context.Context, session *sessionModel.Session) error {
	if session == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "session is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for sid, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, sid)
		}
	}

	clone := *session
	clone.Stages = append([]sessionModel.StageEvent(nil), session.Stages...)
	clone.Metadata.DegradedStages = append([]string(nil), session.Metadata.DegradedStages...)
	s.sessions[session.ID] = memoryEntry{session: clone, expiresAt: now.Add(s.retention)}
	return nil
}

// Get returns the session, or CodeNotFound once it expired.
func (s *InMemory) Get(_ context.Context, sessionID id.SessionID) (*sessionModel.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
	}
	clone := entry.session
	clone.Stages = append([]sessionModel.StageEvent(nil), entry.session.Stages...)
	clone.Metadata.DegradedStages = append([]string(nil), entry.session.Metadata.DegradedStages...)
	return &clone, nil
}
