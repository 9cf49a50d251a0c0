package storefrontserver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	usersdomain "github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	usersports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

const (
	// SessionCookieName carries the opaque session token for carts and logins alike.
	SessionCookieName = "sessionid"

	defaultCookieMaxAge = 14 * 24 * time.Hour

	contextKeyToken = "storefront.session.token"
	contextKeyUser  = "storefront.session.user"
)

// Sessions resolves the session cookie into a cart token and, when logged in, a user.
type Sessions struct {
	users    usersports.Service
	carts    cartports.Service
	logger   *slog.Logger
	secure   bool
	maxAge   time.Duration
	newToken func() string
}

type SessionOption func(*Sessions)

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(secure bool) SessionOption {
	return func(s *Sessions) { s.secure = secure }
}

func WithCookieMaxAge(maxAge time.Duration) SessionOption {
	return func(s *Sessions) {
		if maxAge > 0 {
			s.maxAge = maxAge
		}
	}
}

func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Sessions) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTokenGenerator overrides how anonymous tokens are minted.
func WithTokenGenerator(fn func() string) SessionOption {
	return func(s *Sessions) {
		if fn != nil {
			s.newToken = fn
		}
	}
}

func NewSessions(users usersports.Service, carts cartports.Service, opts ...SessionOption) *Sessions {
	s := &Sessions{
		users:    users,
		carts:    carts,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAge:   defaultCookieMaxAge,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Middleware makes sure every visitor carries a session token and resolves the logged-in user.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		token = strings.TrimSpace(token)
		if err != nil || token == "" {
			token = s.newToken()
			s.writeCookie(c, token)
		} else if s.users != nil {
			user, authErr := s.users.Authenticate(c.Request.Context(), token)
			switch {
			case authErr == nil:
				c.Set(contextKeyUser, user)
			case !errors.Is(authErr, usersports.ErrUnauthenticated):
				s.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "session lookup failed",
					slog.String("error", authErr.Error()))
			}
		}
		c.Set(contextKeyToken, token)
		c.Next()
	}
}

// Establish switches the visitor onto a freshly issued login session, carrying the cart along.
func (s *Sessions) Establish(c *gin.Context, result *usersports.AuthResult) {
	next := result.Token()
	if next == "" {
		return
	}
	previous := SessionToken(c)
	if s.carts != nil && previous != "" {
		if err := s.carts.Transfer(c.Request.Context(), previous, next); err != nil {
			s.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "cart transfer on login failed",
				slog.String("error", err.Error()))
		}
	}
	s.writeCookie(c, next)
	c.Set(contextKeyToken, next)
	c.Set(contextKeyUser, result.User)
}

// End destroys the login session and its cart, leaving the visitor with a new anonymous token.
func (s *Sessions) End(c *gin.Context) error {
	ctx := c.Request.Context()
	token := SessionToken(c)
	var errs []error
	if token != "" {
		if s.users != nil {
			if err := s.users.Logout(ctx, token); err != nil {
				errs = append(errs, err)
			}
		}
		if s.carts != nil {
			if err := s.carts.Clear(ctx, token); err != nil {
				errs = append(errs, err)
			}
		}
	}
	fresh := s.newToken()
	s.writeCookie(c, fresh)
	c.Set(contextKeyToken, fresh)
	c.Set(contextKeyUser, (*usersdomain.User)(nil))
	return errors.Join(errs...)
}

func (s *Sessions) writeCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(s.maxAge/time.Second), "/", "", s.secure, true)
}

// RequireLogin redirects anonymous visitors to the login page with a next parameter.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}
		c.Redirect(http.StatusFound, "/login/?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// SessionToken returns the token the current request operates on.
func SessionToken(c *gin.Context) string {
	return c.GetString(contextKeyToken)
}

// CurrentUser returns the logged-in user, or nil for anonymous visitors.
func CurrentUser(c *gin.Context) *usersdomain.User {
	value, ok := c.Get(contextKeyUser)
	if !ok {
		return nil
	}
	user, _ := value.(*usersdomain.User)
	return user
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return "/"
	}
	return next
}
