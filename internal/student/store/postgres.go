package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Postgres persists student profiles. Result maps are stored as JSONB so the
// two grading tracks share one table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const upsertProfileQuery = `
INSERT INTO student_profiles (
	id, session_id, name, email, language_preference, exam_system,
	ol_results, al_results, bepc_results, bac_results,
	ol_points, al_points, french_average,
	interests, career_preferences, location_preferences,
	profile_completed, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
ON CONFLICT (session_id) DO UPDATE SET
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	language_preference = EXCLUDED.language_preference,
	ol_results = EXCLUDED.ol_results,
	al_results = EXCLUDED.al_results,
	bepc_results = EXCLUDED.bepc_results,
	bac_results = EXCLUDED.bac_results,
	ol_points = EXCLUDED.ol_points,
	al_points = EXCLUDED.al_points,
	french_average = EXCLUDED.french_average,
	interests = EXCLUDED.interests,
	career_preferences = EXCLUDED.career_preferences,
	location_preferences = EXCLUDED.location_preferences,
	profile_completed = EXCLUDED.profile_completed,
	updated_at = EXCLUDED.updated_at`

// Upsert inserts or updates the session's profile row.
func (s *Postgres) Upsert(ctx context.Context, profile *studentModel.Profile) error {
	if profile == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "profile is required")
	}

	olJSON, err := json.Marshal(profile.OLevelResults)
	if err != nil {
		return fmt.Errorf("marshal ol results: %w", err)
	}
	alJSON, err := json.Marshal(profile.ALevelResults)
	if err != nil {
		return fmt.Errorf("marshal al results: %w", err)
	}
	bepcJSON, err := json.Marshal(profile.BEPCResults)
	if err != nil {
		return fmt.Errorf("marshal bepc results: %w", err)
	}
	bacJSON, err := json.Marshal(profile.BacResults)
	if err != nil {
		return fmt.Errorf("marshal bac results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, upsertProfileQuery,
		uuid.UUID(profile.ID), uuid.UUID(profile.SessionID),
		profile.Name, profile.Email, profile.LanguagePreference, string(profile.ExamSystem),
		olJSON, alJSON, bepcJSON, bacJSON,
		profile.OLevelPoints, profile.ALevelPoints, profile.FrenchAverage,
		pq.Array(profile.Interests), pq.Array(profile.CareerPreferences), pq.Array(profile.LocationPreferences),
		profile.ProfileCompleted, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert student profile: %w", err)
	}
	return nil
}

const getProfileQuery = `
SELECT id, session_id, name, email, language_preference, exam_system,
	ol_results, al_results, bepc_results, bac_results,
	ol_points, al_points, french_average,
	interests, career_preferences, location_preferences,
	profile_completed, created_at, updated_at
FROM student_profiles WHERE session_id = $1`

// GetBySession loads the session's profile row, or CodeNotFound.
func (s *Postgres) GetBySession(ctx context.Context, sessionID id.SessionID) (*studentModel.Profile, error) {
	var (
		profile    studentModel.Profile
		profileID  uuid.UUID
		sessID     uuid.UUID
		examSystem string
		olJSON     []byte
		alJSON     []byte
		bepcJSON   []byte
		bacJSON    []byte
	)

	row := s.db.QueryRowContext(ctx, getProfileQuery, uuid.UUID(sessionID))
	err := row.Scan(
		&profileID, &sessID, &profile.Name, &profile.Email, &profile.LanguagePreference, &examSystem,
		&olJSON, &alJSON, &bepcJSON, &bacJSON,
		&profile.OLevelPoints, &profile.ALevelPoints, &profile.FrenchAverage,
		pq.Array(&profile.Interests), pq.Array(&profile.CareerPreferences), pq.Array(&profile.LocationPreferences),
		&profile.ProfileCompleted, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student profile not found")
		}
		return nil, fmt.Errorf("get student profile: %w", err)
	}

	profile.ID = id.StudentID(profileID)
	profile.SessionID = id.SessionID(sessID)
	profile.ExamSystem = studentModel.ExamSystem(examSystem)

	if err := json.Unmarshal(olJSON, &profile.OLevelResults); err != nil {
		return nil, fmt.Errorf("unmarshal ol results: %w", err)
	}
	if err := json.Unmarshal(alJSON, &profile.ALevelResults); err != nil {
		return nil, fmt.Errorf("unmarshal al results: %w", err)
	}
	if err := json.Unmarshal(bepcJSON, &profile.BEPCResults); err != nil {
		return nil, fmt.Errorf("unmarshal bepc results: %w", err)
	}
	if err := json.Unmarshal(bacJSON, &profile.BacResults); err != nil {
		return nil, fmt.Errorf("unmarshal bac results: %w", err)
	}

	return &profile, nil
}
