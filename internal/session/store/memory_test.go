package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	sessionModel "edupath/internal/session/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

type MemoryStoreSuite struct {
	suite.Suite
	now   time.Time
	store *InMemory
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemory(5*time.Minute, WithClock(func() time.Time { return s.now }))
}

func (s *MemoryStoreSuite) TestPutGet() {
	ctx := context.Background()

	s.Run("nil session is rejected", func() {
		err := s.store.Put(ctx, nil)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("round-trips a session", func() {
		session := sessionModel.NewSession(id.NewSessionID(), s.now)
		session.RecordStage(sessionModel.StageEvent{Stage: "profile", Outcome: sessionModel.StageOutcomeCompleted, At: s.now})
		s.Require().NoError(s.store.Put(ctx, session))

		got, err := s.store.Get(ctx, session.ID)
		s.Require().NoError(err)
		s.Equal(session.ID, got.ID)
		s.Len(got.Stages, 1)
	})

	s.Run("unknown session is not found", func() {
		_, err := s.store.Get(ctx, id.NewSessionID())
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("degraded stage metadata is copied, not aliased", func() {
		session := sessionModel.NewSession(id.NewSessionID(), s.now)
		session.RecordStage(sessionModel.StageEvent{Stage: "market", Outcome: sessionModel.StageOutcomeDegraded, At: s.now})
		s.Require().NoError(s.store.Put(ctx, session))

		got, err := s.store.Get(ctx, session.ID)
		s.Require().NoError(err)
		s.Require().Equal([]string{"market"}, got.Metadata.DegradedStages)
		got.Metadata.DegradedStages[0] = "mutated"

		again, err := s.store.Get(ctx, session.ID)
		s.Require().NoError(err)
		s.Equal([]string{"market"}, again.Metadata.DegradedStages)
	})

	s.Run("returned session is a copy", func() {
		session := sessionModel.NewSession(id.NewSessionID(), s.now)
		s.Require().NoError(s.store.Put(ctx, session))

		got, err := s.store.Get(ctx, session.ID)
		s.Require().NoError(err)
		got.RecordStage(sessionModel.StageEvent{Stage: "catalog", At: s.now})

		again, err := s.store.Get(ctx, session.ID)
		s.Require().NoError(err)
		s.Empty(again.Stages)
	})
}

func (s *MemoryStoreSuite) TestRetention() {
	ctx := context.Background()
	session := sessionModel.NewSession(id.NewSessionID(), s.now)
	s.Require().NoError(s.store.Put(ctx, session))

	s.Run("visible within the retention window", func() {
		s.now = s.now.Add(4 * time.Minute)
		_, err := s.store.Get(ctx, session.ID)
		s.NoError(err)
	})

	s.Run("expired once retention elapses", func() {
		s.now = s.now.Add(2 * time.Minute)
		_, err := s.store.Get(ctx, session.ID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("a later put resets the expiry", func() {
		other := sessionModel.NewSession(id.NewSessionID(), s.now)
		s.Require().NoError(s.store.Put(ctx, other))
		s.now = s.now.Add(4 * time.Minute)
		_, err := s.store.Get(ctx, other.ID)
		s.NoError(err)
	})
}
