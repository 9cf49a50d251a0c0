package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
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
	return s
}

func (s *Service) Add(ctx context.Context, token string, productID int64) (*cartdomain.Cart, error) {
	return s.mutation(ctx, "CartService.Add", "add", productID, func(ctx context.Context) (*cartdomain.Cart, error) {
		return s.inner.Add(ctx, token, productID)
	})
}

func (s *Service) Increase(ctx context.Context, token string, productID int64) (*cartdomain.Cart, error) {
	return s.mutation(ctx, "CartService.Increase", "increase", productID, func(ctx context.Context) (*cartdomain.Cart, error) {
		return s.inner.Increase(ctx, token, productID)
	})
}

func (s *Service) Decrease(ctx context.Context, token string, productID int64) (*cartdomain.Cart, error) {
	return s.mutation(ctx, "CartService.Decrease", "decrease", productID, func(ctx context.Context) (*cartdomain.Cart, error) {
		return s.inner.Decrease(ctx, token, productID)
	})
}

func (s *Service) Remove(ctx context.Context, token string, productID int64) (*cartdomain.Cart, error) {
	return s.mutation(ctx, "CartService.Remove", "remove", productID, func(ctx context.Context) (*cartdomain.Cart, error) {
		return s.inner.Remove(ctx, token, productID)
	})
}

func (s *Service) View(ctx context.Context, token string) (*cartdomain.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.View")
	defer span.End()
	view, err := s.inner.View(ctx, token)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to view cart")
	}
	span.SetAttributes(
		attribute.Int("cart.lines.count", len(view.Lines)),
		attribute.String("cart.total", view.Total.StringFixed(2)),
	)
	return view, nil
}

func (s *Service) Snapshot(ctx context.Context, token string) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Snapshot")
	defer span.End()
	cart, err := s.inner.Snapshot(ctx, token)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart")
	}
	span.SetAttributes(attribute.Int("cart.lines.count", cart.Len()))
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()
	if err := s.inner.Clear(ctx, token); err != nil {
		return s.handleError(ctx, span, err, "failed to clear cart")
	}
	return nil
}

func (s *Service) Transfer(ctx context.Context, fromToken, toToken string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Transfer")
	defer span.End()
	if err := s.inner.Transfer(ctx, fromToken, toToken); err != nil {
		return s.handleError(ctx, span, err, "failed to transfer cart")
	}
	return nil
}

func (s *Service) mutation(ctx context.Context, spanName, op string, productID int64, call func(context.Context) (*cartdomain.Cart, error)) (*cartdomain.Cart, error) {
	ctx, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()
	cart, err := call(ctx)
	if err != nil {
		s.metrics.recordMutation(ctx, op, false)
		return nil, s.handleError(ctx, span, err, "cart "+op+" failed", slog.Int64("product.id", productID))
	}
	s.metrics.recordMutation(ctx, op, true)
	span.SetAttributes(
		attribute.Int("cart.lines.count", cart.Len()),
		attribute.Int("cart.items.count", cart.ItemCount()),
	)
	return cart, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("cart.service.mutations", metric.WithDescription("Number of cart mutations by operation"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, op string, ok bool) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("cart.operation", op),
			attribute.Bool("cart.success", ok),
		))
	}
}

var _ cartports.Service = (*Service)(nil)
