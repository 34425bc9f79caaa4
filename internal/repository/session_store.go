// internal/repository/session_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionKey names the short-lived session scope entry.
const SessionKey = "teamflow_session"

// SessionStore mirrors the current session token into a short-lived scope
// so a reload can resume without logging in again.
type SessionStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	Load(ctx context.Context) (token string, found bool, err error)
	Clear(ctx context.Context) error
}

// MemorySessionStore holds one token with an expiry checked against now.
type MemorySessionStore struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

func NewMemorySessionStore(now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{now: now}
}

func (s *MemorySessionStore) Save(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiresAt = s.now().Add(ttl)
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false, nil
	}
	if !s.now().Before(s.expiresAt) {
		s.token = ""
		return "", false, nil
	}
	return s.token, true, nil
}

func (s *MemorySessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}

// RedisSessionStore keeps the token in Redis and lets Redis expire it.
type RedisSessionStore struct {
	client *redis.Client
	key    string
}

// NewRedisSessionStore stores the token under prefix+SessionKey. Give each
// workspace its own prefix when several share one Redis.
func NewRedisSessionStore(client *redis.Client, prefix string) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		key:    prefix + SessionKey,
	}
}

func (s *RedisSessionStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("load session: %w", err)
	}
	return token, true, nil
}

func (s *RedisSessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
