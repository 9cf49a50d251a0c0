package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps carts in process memory keyed by session token.
type SessionStore struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewSessionStore() *SessionStore {
	return &SessionStore{carts: map[string]*domain.Cart{}}
}

func (s *SessionStore) Load(_ context.Context, token string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[token]
	if !ok {
		return domain.New(), nil
	}
	return cart.Clone(), nil
}

// Update runs fn under the store lock so concurrent mutations of one token never interleave.
func (s *SessionStore) Update(_ context.Context, token string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	working := domain.New()
	if existing, ok := s.carts[token]; ok {
		working = existing.Clone()
	}
	if err := fn(working); err != nil {
		return nil, err
	}
	if working.IsEmpty() {
		delete(s.carts, token)
	} else {
		s.carts[token] = working.Clone()
	}
	return working, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}
