package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	userdomain "github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/observability/service"

// Service decorates the user service with tracing, logging, and metrics.
type Service struct {
	inner   userports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core user service.
func New(inner userports.Service, opts ...Option) userports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) Signup(ctx context.Context, form userdomain.SignupForm) (*userports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Signup", trace.WithAttributes(attribute.String("user.username", form.Username)))
	defer span.End()
	result, err := s.inner.Signup(ctx, form)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidInput) {
			span.SetAttributes(attribute.Bool("user.signup.rejected", true))
			s.logInfo(ctx, "signup rejected", slog.String("username", form.Username))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "failed to sign up user", slog.String("username", form.Username))
	}
	s.metrics.recordSignup(ctx)
	s.logInfo(ctx, "user signed up", slog.Int64("user.id", result.User.ID), slog.String("username", result.User.Username))
	return result, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*userports.AuthResult, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Login", trace.WithAttributes(attribute.String("user.username", username)))
	defer span.End()
	result, err := s.inner.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, userapp.ErrAuthentication) {
			s.metrics.recordLogin(ctx, false)
			s.logInfo(ctx, "login rejected", slog.String("username", username))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("username", username))
	}
	s.metrics.recordLogin(ctx, true)
	return result, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "UserService.Logout")
	defer span.End()
	if err := s.inner.Logout(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "logout failed")
	}
	return nil
}

func (s *Service) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.Authenticate")
	defer span.End()
	user, err := s.inner.Authenticate(ctx, token)
	if err != nil {
		if errors.Is(err, userports.ErrUnauthenticated) {
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "failed to authenticate session")
	}
	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.PurgeExpired")
	defer span.End()
	purged, err := s.inner.PurgeExpired(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to purge expired sessions")
	}
	span.SetAttributes(attribute.Int64("user.sessions.purged", purged))
	s.logInfo(ctx, "expired sessions purged", slog.Int64("count", purged))
	return purged, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

type serviceMetrics struct {
	signups metric.Int64Counter
	logins  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	signups, _ := m.Int64Counter("users.service.signups", metric.WithDescription("Number of users signed up"))
	logins, _ := m.Int64Counter("users.service.logins", metric.WithDescription("Number of login attempts"))
	return serviceMetrics{signups: signups, logins: logins}
}

func (m serviceMetrics) recordSignup(ctx context.Context) {
	if m.signups != nil {
		m.signups.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordLogin(ctx context.Context, ok bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("user.login.success", ok)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ userports.Service = (*Service)(nil)
