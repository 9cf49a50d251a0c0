package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const (
	defaultTTL        = 14 * 24 * time.Hour
	defaultMaxRetries = 5
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps carts in Redis as JSON documents under cart:<token>.
// Updates use WATCH/MULTI so a concurrent writer forces a retry instead of a lost update.
type SessionStore struct {
	client     goredis.UniversalClient
	ttl        time.Duration
	maxRetries int
}

type Option func(*SessionStore)

// WithTTL sets the idle expiry refreshed on every write.
func WithTTL(ttl time.Duration) Option {
	return func(s *SessionStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithMaxRetries(n int) Option {
	return func(s *SessionStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

func NewSessionStore(client goredis.UniversalClient, opts ...Option) *SessionStore {
	s := &SessionStore{client: client, ttl: defaultTTL, maxRetries: defaultMaxRetries}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *SessionStore) Load(ctx context.Context, token string) (*domain.Cart, error) {
	return s.read(ctx, s.client, cartKey(token))
}

// Update retries the WATCH/MULTI transaction up to maxRetries times. When every
// attempt loses a race it applies fn once more without WATCH, so the last writer wins.
func (s *SessionStore) Update(ctx context.Context, token string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	key := cartKey(token)
	var result *domain.Cart
	txf := func(tx *goredis.Tx) error {
		cart, payload, err := s.apply(ctx, tx, key, fn)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			s.write(ctx, pipe, key, payload)
			return nil
		})
		if err != nil {
			return err
		}
		result = cart
		return nil
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	cart, payload, err := s.apply(ctx, s.client, key, fn)
	if err != nil {
		return nil, err
	}
	if err := s.write(ctx, s.client, key, payload).Err(); err != nil {
		return nil, fmt.Errorf("redis write failed: %w", err)
	}
	return cart, nil
}

// apply reads the cart, runs fn, and encodes the result. A nil payload means the cart is empty.
func (s *SessionStore) apply(ctx context.Context, client goredis.Cmdable, key string, fn func(*domain.Cart) error) (*domain.Cart, []byte, error) {
	cart, err := s.read(ctx, client, key)
	if err != nil {
		return nil, nil, err
	}
	if err := fn(cart); err != nil {
		return nil, nil, err
	}
	if cart.IsEmpty() {
		return cart, nil, nil
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return cart, payload, nil
}

func (s *SessionStore) write(ctx context.Context, client goredis.Cmdable, key string, payload []byte) goredis.Cmder {
	if payload == nil {
		return client.Del(ctx, key)
	}
	return client.Set(ctx, key, payload, s.ttl)
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, cartKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *SessionStore) read(ctx context.Context, client goredis.Cmdable, key string) (*domain.Cart, error) {
	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	cart := domain.New()
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	cart.Normalize()
	return cart, nil
}

func cartKey(token string) string {
	return fmt.Sprintf("cart:%s", token)
}
