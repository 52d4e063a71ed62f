package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionTTL           = 3 * time.Hour
	persistentSessionTTL = 30 * 24 * time.Hour
)

// SessionStore records issued sign-in sessions in Redis. The entry's TTL
// carries the remember-me semantics: the token's internal expiry stays fixed
// while a persistent session outlives it.
// Key format: session:<username>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Record stores the issued token under the username, replacing any previous
// session for the same account.
func (s *SessionStore) Record(ctx context.Context, username, token string, persistent bool) error {
	ttl := sessionTTL
	if persistent {
		ttl = persistentSessionTTL
	}
	if err := s.client.Set(ctx, s.key(username), token, ttl).Err(); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(username string) string {
	return "session:" + username
}
