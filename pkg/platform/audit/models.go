// Package audit defines session lifecycle events emitted from the
// orchestrator. Keep the Event transport-agnostic so sinks can fan out.
package audit

import (
	"context"
	"time"

	id "edupath/pkg/domain"
)

// Event captures one session lifecycle action.
type Event struct {
	Timestamp time.Time    `json:"timestamp"`
	SessionID id.SessionID `json:"session_id"`
	Action    string       `json:"action"`
	Stage     string       `json:"stage,omitempty"`
	Reason    string       `json:"reason,omitempty"`
}

// Actions emitted by the pipeline.
const (
	ActionSessionStarted   = "session_started"
	ActionStageCompleted   = "stage_completed"
	ActionStageDegraded    = "stage_degraded"
	ActionSessionCompleted = "session_completed"
	ActionSessionFailed    = "session_failed"
)

// Publisher emits audit events for pipeline lifecycle operations. Emission is
// best-effort; callers log and continue on error.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
