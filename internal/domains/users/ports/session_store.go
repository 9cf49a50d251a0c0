package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
)

// ErrSessionNotFound is returned when a token has no stored session.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists login sessions keyed by token.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes sessions expired at now and reports how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
