// Package orchestrator drives one recommendation pipeline run through its
// stages and tracks the session state machine.
package orchestrator

import (
	"context"

	catalogModel "edupath/internal/catalog/models"
	"edupath/internal/enrichment"
	marketModel "edupath/internal/market/models"
	recModel "edupath/internal/recommendation/models"
	sessionModel "edupath/internal/session/models"
	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
)

// ProfileResolver loads the student profile for a session. Stage 1; fatal on
// failure.
type ProfileResolver interface {
	Resolve(ctx context.Context, sessionID id.SessionID) (*studentModel.Profile, error)
}

// CatalogSource lists candidate programs. Stage 2; degradable, failure
// yields an empty candidate set.
type CatalogSource interface {
	CandidatePrograms(ctx context.Context, filters catalogModel.Filters) ([]catalogModel.Candidate, error)
}

// MarketSource analyzes the job market for the candidates. Stage 3;
// degradable, failure yields neutral insights.
type MarketSource interface {
	Analyze(ctx context.Context, candidates []catalogModel.Candidate) (*marketModel.Insights, error)
}

// Recommender scores and ranks the candidates. Stage 4; fatal on failure.
type Recommender interface {
	Generate(ctx context.Context, sessionID id.SessionID, profile *studentModel.Profile, candidates []catalogModel.Candidate, insights *marketModel.Insights) (*recModel.Output, error)
}

// RecommendationSink persists the output. Best-effort; failure is logged and
// the run continues.
type RecommendationSink interface {
	Save(ctx context.Context, output *recModel.Output) error
}

// Enricher produces optional advisory content. Stage 5; never fails the run.
type Enricher interface {
	Enrich(ctx context.Context, profile *studentModel.Profile, recs []recModel.ScoredRecommendation) *enrichment.Content
}

// SessionStore persists session records.
type SessionStore interface {
	Put(ctx context.Context, session *sessionModel.Session) error
	Get(ctx context.Context, sessionID id.SessionID) (*sessionModel.Session, error)
}
