package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
)

// ErrUnauthenticated is returned when a token does not resolve to a live session.
var ErrUnauthenticated = errors.New("not authenticated")

// AuthResult is the outcome of a successful signup or login.
type AuthResult struct {
	User    *domain.User
	Session *domain.Session
}

// Token returns the session token to hand to the client.
func (r *AuthResult) Token() string {
	if r == nil || r.Session == nil {
		return ""
	}
	return r.Session.Token
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	// Signup validates the form, creates the user, and opens a session.
	// Validation failures are reported as domain.FieldErrors.
	Signup(ctx context.Context, form domain.SignupForm) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	PurgeExpired(ctx context.Context) (int64, error)
}
