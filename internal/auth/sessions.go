package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionTTL matches the original cookie lifetime.
const SessionTTL = 7 * 24 * time.Hour

// Session is the identity attached to an authenticated request.
type Session struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// Sessions issues and verifies opaque session tokens backed by Redis.
type Sessions struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessions creates a session store with the default TTL.
func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{
		rdb: rdb,
		ttl: SessionTTL,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create issues a new token for the user.
func (s *Sessions) Create(ctx context.Context, userID int64, email string) (string, error) {
	token := uuid.NewString()

	data, err := json.Marshal(Session{UserID: userID, Email: email})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(token), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Get resolves a token to its session, or nil if unknown or expired.
func (s *Sessions) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	return &session, nil
}

// Delete invalidates a token. Deleting an unknown token is a no-op.
func (s *Sessions) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
