// Package memory provides an in-process audit sink for tests and single-node
// deployments.
package memory

import (
	"context"
	"sync"

	"edupath/pkg/platform/audit"
)

// Store collects emitted events in order.
type Store struct {
	mu     sync.Mutex
	events []audit.Event
}

// New creates an empty in-memory audit sink.
func New() *Store {
	return &Store{}
}

// Emit records the event.
func (s *Store) Emit(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of all recorded events.
func (s *Store) Events() []audit.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}
