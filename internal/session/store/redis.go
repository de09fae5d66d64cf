package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"edupath/internal/platform/redis"
	sessionModel "edupath/internal/session/models"
	id "edupath/pkg/domain"
	dErrors "edupath/pkg/domain-errors"
)

const sessionKeyPrefix = "edupath:session:"

// Redis persists sessions as JSON values with the retention as TTL, so
// expiry needs no sweeper.
type Redis struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedis creates a Redis-backed session store.
func NewRedis(client *redis.Client, retention time.Duration) (*Redis, error) {
	if client == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "redis client is required")
	}
	return &Redis{client: client, retention: retention}, nil
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + sessionID.String()
}

// Put stores or replaces the session and resets its TTL.
func (s *Redis) Put(ctx context.Context, session *sessionModel.Session) error {
	if session == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "session is required")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, s.retention).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "store session")
	}
	return nil
}

// Get returns the session, or CodeNotFound once its TTL elapsed.
func (s *Redis) Get(ctx context.Context, sessionID id.SessionID) (*sessionModel.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "load session")
	}
	var session sessionModel.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}
