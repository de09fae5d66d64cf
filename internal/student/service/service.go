// Package service processes and resolves student profiles. Profile
// resolution is the first pipeline stage and its failure is fatal to a run.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	studentModel "edupath/internal/student/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

// Store persists student profiles keyed by session.
type Store interface {
	Upsert(ctx context.Context, profile *studentModel.Profile) error
	GetBySession(ctx context.Context, sessionID id.SessionID) (*studentModel.Profile, error)
}

// ProfileInput is the untrusted payload a caller submits for one session.
type ProfileInput struct {
	ExamSystem         string `json:"exam_system"`
	Name               string `json:"name,omitempty"`
	Email              string `json:"email,omitempty"`
	LanguagePreference string `json:"language_preference,omitempty"`

	OLevelResults map[string]string  `json:"ol_results,omitempty"`
	ALevelResults map[string]string  `json:"al_results,omitempty"`
	BEPCResults   map[string]float64 `json:"bepc_results,omitempty"`
	BacResults    map[string]float64 `json:"bac_results,omitempty"`

	Interests           []string `json:"interests,omitempty"`
	CareerPreferences   []string `json:"career_preferences,omitempty"`
	LocationPreferences []string `json:"location_preferences,omitempty"`
}

// Service validates, derives, and stores student profiles.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a profile service.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "student store is required")
	}
	svc := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Process validates the input, creates or updates the session's profile, and
// recomputes derived points. All grade validation errors carry
// CodeInvalidInput and reject the request before any scoring happens.
func (s *Service) Process(ctx context.Context, sessionID id.SessionID, input ProfileInput) (*studentModel.Profile, error) {
	system := studentModel.ExamSystem(strings.ToLower(strings.TrimSpace(input.ExamSystem)))

	now := s.now()
	profile, err := s.store.GetBySession(ctx, sessionID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load existing profile")
		}
		profile, err = studentModel.NewProfile(sessionID, system, now)
		if err != nil {
			return nil, err
		}
	} else if profile.ExamSystem != system {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "exam system cannot change within a session")
	}

	if input.Name != "" {
		profile.Name = input.Name
	}
	if input.Email != "" {
		profile.Email = input.Email
	}
	if input.LanguagePreference != "" {
		profile.LanguagePreference = input.LanguagePreference
	}
	if input.Interests != nil {
		profile.Interests = input.Interests
	}
	if input.CareerPreferences != nil {
		profile.CareerPreferences = input.CareerPreferences
	}
	if input.LocationPreferences != nil {
		profile.LocationPreferences = input.LocationPreferences
	}

	switch system {
	case studentModel.ExamSystemGCE:
		if input.OLevelResults != nil {
			if err := profile.SetOLevelResults(input.OLevelResults, now); err != nil {
				return nil, err
			}
		}
		if input.ALevelResults != nil {
			if err := profile.SetALevelResults(input.ALevelResults, now); err != nil {
				return nil, err
			}
		}
	case studentModel.ExamSystemFrench:
		if input.BEPCResults != nil {
			if err := profile.SetBEPCResults(input.BEPCResults, now); err != nil {
				return nil, err
			}
		}
		if input.BacResults != nil {
			if err := profile.SetBacResults(input.BacResults, now); err != nil {
				return nil, err
			}
		}
	}

	profile.ProfileCompleted = profile.HasSufficientData()
	profile.UpdatedAt = now

	if err := s.store.Upsert(ctx, profile); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "save student profile")
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "student profile processed",
			"session_id", sessionID.String(),
			"exam_system", string(system),
			"profile_completed", profile.ProfileCompleted,
		)
	}
	return profile, nil
}

// Resolve returns the profile for a session, or CodeNotFound.
func (s *Service) Resolve(ctx context.Context, sessionID id.SessionID) (*studentModel.Profile, error) {
	profile, err := s.store.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
