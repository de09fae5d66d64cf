package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	platformredis "edupath/internal/platform/redis"
	sessionModel "edupath/internal/session/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

type RedisStoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Redis
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupTest() {
	var err error
	s.mini, err = miniredis.Run()
	s.Require().NoError(err)

	client := &platformredis.Client{Client: goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})}
	s.store, err = NewRedis(client, 5*time.Minute)
	s.Require().NoError(err)
}

func (s *RedisStoreSuite) TearDownTest() {
	s.mini.Close()
}

func (s *RedisStoreSuite) TestNewRedis() {
	_, err := NewRedis(nil, time.Minute)
	s.Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func (s *RedisStoreSuite) TestPutGet() {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Run("nil session is rejected", func() {
		err := s.store.Put(ctx, nil)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("round-trips the session with its stage log", func() {
		session := sessionModel.NewSession(id.NewSessionID(), now)
		s.Require().NoError(session.AdvanceTo(sessionModel.StateProfileResolved, now))
		session.RecordStage(sessionModel.StageEvent{
			Stage:    "profile",
			Outcome:  sessionModel.StageOutcomeCompleted,
			Duration: 120 * time.Millisecond,
			At:       now,
		})
		s.Require().NoError(s.store.Put(ctx, session))

		got, err := s.store.Get(ctx, session.ID)
		s.Require().NoError(err)
		s.Equal(session.ID, got.ID)
		s.Equal(sessionModel.StateProfileResolved, got.State)
		s.Require().Len(got.Stages, 1)
		s.Equal(120*time.Millisecond, got.Stages[0].Duration)
	})

	s.Run("unknown session is not found", func() {
		_, err := s.store.Get(ctx, id.NewSessionID())
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("sessions expire after the retention TTL", func() {
		session := sessionModel.NewSession(id.NewSessionID(), now)
		s.Require().NoError(s.store.Put(ctx, session))

		s.mini.FastForward(6 * time.Minute)

		_, err := s.store.Get(ctx, session.ID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
