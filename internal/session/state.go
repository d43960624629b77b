package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jeansstore/backend/pkg/config"
	redisclient "github.com/jeansstore/backend/pkg/redis"
)

// User is the signed-in identity stored per browser session. Credentials
// are never verified or persisted: this is a demonstration login.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store persists per-session user documents.
type Store interface {
	Load(ctx context.Context, sessionID string) (*User, error)
	Save(ctx context.Context, sessionID string, user *User) error
	Clear(ctx context.Context, sessionID string) error
}

type stateStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type stateKeyer interface {
	SessionKey(sessionID string) string
}

type redisStore struct {
	store stateStore
	keyer stateKeyer
	ttl   time.Duration
}

// NewRedisStore builds a user store backed by Redis.
func NewRedisStore(client *redisclient.Client, cfg config.SessionConfig) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.StateTTL <= 0 {
		return nil, fmt.Errorf("session state ttl must be positive")
	}
	return &redisStore{store: client, keyer: client, ttl: cfg.StateTTL}, nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*User, error) {
	raw, err := s.store.Get(ctx, s.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decoding user document: %w", err)
	}
	return &user, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, user *User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user document: %w", err)
	}
	return s.store.Set(ctx, s.keyer.SessionKey(sessionID), string(raw), s.ttl)
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.keyer.SessionKey(sessionID))
}
