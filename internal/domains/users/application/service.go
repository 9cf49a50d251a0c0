package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

// DefaultSessionTTL bounds how long a login stays valid.
const DefaultSessionTTL = 14 * 24 * time.Hour

// Service exposes user bounded context use cases.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	sessionTTL time.Duration
	hashCost   int
	now        func() time.Time
	newToken   func() string
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithHashCost sets the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		sessionTTL: DefaultSessionTTL,
		hashCost:   bcrypt.DefaultCost,
		now:        time.Now,
		newToken:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) Signup(ctx context.Context, form domain.SignupForm) (*ports.AuthResult, error) {
	if err := form.Validate(); err != nil {
		return nil, mapError(err)
	}
	username := strings.TrimSpace(form.Username)
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, mapError(usernameTaken())
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}

	user, err := domain.NewUser(username, form.Password, s.hashCost)
	if err != nil {
		return nil, mapError(err)
	}
	user.CreatedAt = s.now().UTC()
	created, err := s.repo.Create(ctx, user)
	if errors.Is(err, ports.ErrUsernameTaken) {
		return nil, mapError(usernameTaken())
	}
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, created)
}

func (s *Service) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	return s.openSession(ctx, user)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Authenticate resolves a token to its user. Expired sessions are removed on sight.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ports.ErrUnauthenticated
	}
	session, err := s.sessions.Get(ctx, token)
	if errors.Is(err, ports.ErrSessionNotFound) {
		return nil, ports.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ports.ErrUnauthenticated
	}
	user, err := s.repo.GetByID(ctx, session.UserID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, ports.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx, s.now())
}

func (s *Service) openSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	session := &domain.Session{
		Token:     s.newToken(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL).UTC(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: user, Session: session}, nil
}

func usernameTaken() domain.FieldErrors {
	errs := domain.FieldErrors{}
	errs.Add(domain.FieldUsername, "A user with that username already exists.")
	return errs
}

var _ ports.Service = (*Service)(nil)
