package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jeansstore/backend/pkg/config"
	"github.com/jeansstore/backend/pkg/fakestore"
	redisclient "github.com/jeansstore/backend/pkg/redis"
	"github.com/jeansstore/backend/pkg/viacep"
)

const (
	// StepAddress collects the postal code and runs the lookup pipeline.
	StepAddress = 1
	// StepConfirm shows the resolved address, delivery, and payment choices.
	StepConfirm = 2
)

// Customer holds the buyer details collected on the confirmation step.
type Customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
}

// State is the per-session checkout wizard document stored in Redis.
type State struct {
	Step           int             `json:"step"`
	CEP            string          `json:"cep"`
	Address        *viacep.Address `json:"address,omitempty"`
	Profile        *fakestore.User `json:"profile,omitempty"`
	DeliveryOption DeliveryOption  `json:"delivery_option"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Customer       Customer        `json:"customer"`
}

// Store persists per-session checkout documents and owns the lookup
// lock and rate limit counters.
type Store interface {
	Load(ctx context.Context, sessionID string) (*State, bool, error)
	Save(ctx context.Context, sessionID string, state *State) error
	Clear(ctx context.Context, sessionID string) error
	TryLockLookup(ctx context.Context, sessionID string) (bool, error)
	UnlockLookup(ctx context.Context, sessionID string) error
	AllowLookup(ctx context.Context, sessionID string) (bool, error)
}

type stateStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type stateKeyer interface {
	CheckoutKey(sessionID string) string
	LookupLockKey(sessionID string) string
}

type redisStore struct {
	store stateStore
	keyer stateKeyer
	cfg   config.SessionConfig
}

// NewRedisStore builds a checkout store backed by Redis.
func NewRedisStore(client *redisclient.Client, cfg config.SessionConfig) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.StateTTL <= 0 {
		return nil, fmt.Errorf("session state ttl must be positive")
	}
	if cfg.LookupLockTTL <= 0 {
		return nil, fmt.Errorf("lookup lock ttl must be positive")
	}
	return &redisStore{store: client, keyer: client, cfg: cfg}, nil
}

// Load returns the stored state and whether a document existed.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*State, bool, error) {
	raw, err := s.store.Get(ctx, s.keyer.CheckoutKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, false, fmt.Errorf("decoding checkout document: %w", err)
	}
	return &state, true, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding checkout document: %w", err)
	}
	return s.store.Set(ctx, s.keyer.CheckoutKey(sessionID), string(raw), s.cfg.StateTTL)
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.keyer.CheckoutKey(sessionID))
}

// TryLockLookup acquires the per-session lookup lock. The lock expires on
// its own so a crashed lookup cannot wedge the session.
func (s *redisStore) TryLockLookup(ctx context.Context, sessionID string) (bool, error) {
	return s.store.SetNX(ctx, s.keyer.LookupLockKey(sessionID), "1", s.cfg.LookupLockTTL)
}

func (s *redisStore) UnlockLookup(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.keyer.LookupLockKey(sessionID))
}

// AllowLookup applies the per-session fixed-window lookup rate limit.
func (s *redisStore) AllowLookup(ctx context.Context, sessionID string) (bool, error) {
	if s.cfg.LookupWindowLimit <= 0 {
		return true, nil
	}
	allowed, _, err := s.store.FixedWindowAllow(ctx, "lookup:"+sessionID, int64(s.cfg.LookupWindowLimit), s.cfg.LookupWindow)
	return allowed, err
}
