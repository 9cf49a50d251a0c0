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

	paymentsapp "github.com/Apurer/go-gin-storefront/internal/domains/payments/application"
	paymentsports "github.com/Apurer/go-gin-storefront/internal/domains/payments/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/payments/adapters/observability/service"

// Service decorates the payments service with tracing, logging, and metrics.
type Service struct {
	inner    paymentsports.Service
	tracer   trace.Tracer
	logger   *slog.Logger
	prepared metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		if m == nil {
			return
		}
		s.prepared, _ = m.Int64Counter("payments.service.prepared", metric.WithDescription("Number of UPI payment pages prepared"))
	}
}

// New wraps the core payments service.
func New(inner paymentsports.Service, opts ...Option) paymentsports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PreparePayment(ctx context.Context, sessionToken string) (*paymentsports.PaymentPage, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentsService.PreparePayment")
	defer span.End()
	page, err := s.inner.PreparePayment(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, paymentsapp.ErrCartEmpty) {
			span.SetAttributes(attribute.Bool("payments.cart_empty", true))
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to prepare payment", slog.String("error", err.Error()))
		}
		return nil, err
	}
	if s.prepared != nil {
		s.prepared.Add(ctx, 1)
	}
	span.SetAttributes(
		attribute.String("payments.amount", page.Intent.Amount.StringFixed(2)),
		attribute.Int("payments.qr.bytes", len(page.PNG)),
	)
	return page, nil
}

var _ paymentsports.Service = (*Service)(nil)
