package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jeansstore/backend/pkg/config"
	redisclient "github.com/jeansstore/backend/pkg/redis"
)

// Item is a single cart line. Lines are keyed by (ProductID, Size): the
// same product in two sizes is two distinct lines.
type Item struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
}

// Cart is the per-session cart document stored in Redis.
type Cart struct {
	Items []Item `json:"items"`
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums price*quantity across all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c *Cart) find(productID int, size string) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) remove(productID int, size string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
}

// Store persists per-session cart documents.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Clear(ctx context.Context, sessionID string) error
}

type stateStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type stateKeyer interface {
	CartKey(sessionID string) string
}

type redisStore struct {
	store stateStore
	keyer stateKeyer
	ttl   time.Duration
}

// NewRedisStore builds a cart store backed by Redis.
func NewRedisStore(client *redisclient.Client, cfg config.SessionConfig) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.StateTTL <= 0 {
		return nil, fmt.Errorf("session state ttl must be positive")
	}
	return &redisStore{store: client, keyer: client, ttl: cfg.StateTTL}, nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, s.keyer.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redisclient.Nil) {
			return &Cart{}, nil
		}
		return nil, err
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decoding cart document: %w", err)
	}
	return &cart, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart document: %w", err)
	}
	return s.store.Set(ctx, s.keyer.CartKey(sessionID), string(raw), s.ttl)
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.keyer.CartKey(sessionID))
}
