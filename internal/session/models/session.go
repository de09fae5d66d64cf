// Package models defines the pipeline session record and its stage log.
package models

import (
	"time"

	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// State is a session's position in the pipeline state machine. Data flows
// strictly forward; no state re-enters an earlier one.
type State string

const (
	StateCreated         State = "created"
	StateProfileResolved State = "profile_resolved"
	StateProgramsFetched State = "programs_fetched"
	StateMarketAnalyzed  State = "market_analyzed"
	StateRecommended     State = "recommended"
	StateEnriched        State = "enriched"
	StateCompleted       State = "completed"
	StateFailed          State = "failed"
)

// stateOrder drives the forward-only transition check. Terminal states are
// not listed; they are reachable from any non-terminal state.
var stateOrder = map[State]int{
	StateCreated:         0,
	StateProfileResolved: 1,
	StateProgramsFetched: 2,
	StateMarketAnalyzed:  3,
	StateRecommended:     4,
	StateEnriched:        5,
}

// Stage outcome labels recorded in the stage log.
const (
	StageOutcomeCompleted = "completed"
	StageOutcomeDegraded  = "degraded"
	StageOutcomeFailed    = "failed"
)

// StageEvent is one entry in the append-only stage log.
type StageEvent struct {
	Stage    string        `json:"stage"`
	Outcome  string        `json:"outcome"`
	Detail   string        `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	At       time.Time     `json:"at"`
}

// Metadata summarizes a run for the session record. It is populated on every
// terminal transition, success or failure.
type Metadata struct {
	TotalAnalyzed    int      `json:"total_analyzed"`
	TotalRecommended int      `json:"total_recommended"`
	DegradedStages   []string `json:"degraded_stages,omitempty"`
}

// Session tracks one recommendation pipeline run.
type Session struct {
	ID          id.SessionID `json:"id"`
	State       State        `json:"state"`
	Stages      []StageEvent `json:"stages"`
	FailedStage string       `json:"failed_stage,omitempty"`
	Error       string       `json:"error,omitempty"`
	Metadata    Metadata     `json:"metadata"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// NewSession starts a session in the created state.
func NewSession(sessionID id.SessionID, now time.Time) *Session {
	return &Session{
		ID:        sessionID,
		State:     StateCreated,
		Stages:    []StageEvent{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Terminal reports whether the session reached a final state.
func (s *Session) Terminal() bool {
	return s.State == StateCompleted || s.State == StateFailed
}

// AdvanceTo moves the session forward to next. Backward moves and moves out
// of a terminal state violate the state machine.
func (s *Session) AdvanceTo(next State, now time.Time) error {
	if s.Terminal() {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"session %s is terminal in state %s", s.ID, s.State)
	}
	if next == StateCompleted || next == StateFailed {
		s.State = next
		s.UpdatedAt = now
		s.CompletedAt = &now
		return nil
	}
	from, ok := stateOrder[s.State]
	to, ok2 := stateOrder[next]
	if !ok || !ok2 || to <= from {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"invalid session transition %s -> %s", s.State, next)
	}
	s.State = next
	s.UpdatedAt = now
	return nil
}

// RecordStage appends to the stage log. The log is append-only; entries are
// never rewritten.
func (s *Session) RecordStage(event StageEvent) {
	s.Stages = append(s.Stages, event)
	if event.Outcome == StageOutcomeDegraded {
		s.Metadata.DegradedStages = append(s.Metadata.DegradedStages, event.Stage)
	}
}

// Fail marks the session failed, recording the failing stage and error.
func (s *Session) Fail(stage string, err error, now time.Time) {
	s.FailedStage = stage
	if err != nil {
		s.Error = err.Error()
	}
	s.State = StateFailed
	s.UpdatedAt = now
	s.CompletedAt = &now
}
