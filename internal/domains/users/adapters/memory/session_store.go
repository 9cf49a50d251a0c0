package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory login session store.
type SessionStore struct {
	session sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil || strings.TrimSpace(session.Token) == "" {
		return errors.New("session token is required")
	}
	clone := *session
	s.session.Store(clone.Token, &clone)
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	value, ok := s.session.Load(token)
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	clone := *value.(*domain.Session)
	return &clone, nil
}

func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.session.Delete(token)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	s.session.Range(func(key, value any) bool {
		if value.(*domain.Session).Expired(now) {
			s.session.Delete(key)
			purged++
		}
		return true
	})
	return purged, nil
}
