package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	recModel "edupath/internal/recommendation/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Postgres persists recommendation outputs. The scored list is stored as one
// JSONB document per session; recommendations are read back whole, never
// queried row by row.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed recommendation store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const saveOutputQuery = `
INSERT INTO recommendation_outputs (
	session_id, recommendations, total_analyzed, total_recommended, generated_at
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (session_id) DO UPDATE SET
	recommendations = EXCLUDED.recommendations,
	total_analyzed = EXCLUDED.total_analyzed,
	total_recommended = EXCLUDED.total_recommended,
	generated_at = EXCLUDED.generated_at`

// Save inserts or replaces the session's output.
func (s *Postgres) Save(ctx context.Context, output *recModel.Output) error {
	if output == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "output is required")
	}
	recsJSON, err := json.Marshal(output.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	_, err = s.db.ExecContext(ctx, saveOutputQuery,
		uuid.UUID(output.SessionID), recsJSON,
		output.TotalAnalyzed, output.TotalRecommended, output.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("save recommendations: %w", err)
	}
	return nil
}

const getOutputQuery = `
SELECT session_id, recommendations, total_analyzed, total_recommended, generated_at
FROM recommendation_outputs WHERE session_id = $1`

// GetBySession loads the session's output, or CodeNotFound.
func (s *Postgres) GetBySession(ctx context.Context, sessionID id.SessionID) (*recModel.Output, error) {
	var (
		output   recModel.Output
		sessID   uuid.UUID
		recsJSON []byte
	)
	row := s.db.QueryRowContext(ctx, getOutputQuery, uuid.UUID(sessionID))
	err := row.Scan(&sessID, &recsJSON, &output.TotalAnalyzed, &output.TotalRecommended, &output.GeneratedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recommendations not found for session")
		}
		return nil, fmt.Errorf("get recommendations: %w", err)
	}
	output.SessionID = id.SessionID(sessID)
	if err := json.Unmarshal(recsJSON, &output.Recommendations); err != nil {
		return nil, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	return &output, nil
}
