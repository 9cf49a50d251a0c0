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

	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.PlaceOrder", trace.WithAttributes(attribute.Int64("user.id", input.UserID)))
	defer span.End()
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		if errors.Is(err, ordersapp.ErrCartEmpty) {
			span.SetAttributes(attribute.Bool("orders.cart_empty", true))
			s.logger.LogAttrs(ctx, slog.LevelInfo, "order attempted with empty cart", slog.Int64("user.id", input.UserID))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("user.id", input.UserID))
	}
	s.metrics.recordPlaced(ctx, order)
	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.Int("order.items.count", len(order.Items)),
		attribute.String("order.total", order.TotalPrice.StringFixed(2)),
	)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "order placed",
		slog.Int64("order.id", order.ID),
		slog.Int64("user.id", order.UserID),
		slog.String("order.total", order.TotalPrice.StringFixed(2)),
	)
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, userID int64) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()
	orders, err := s.inner.ListOrders(ctx, userID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(orders)))
	return orders, nil
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
	placed metric.Int64Counter
	units  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	placed, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	units, _ := m.Int64Counter("orders.service.units", metric.WithDescription("Number of product units ordered"))
	return serviceMetrics{placed: placed, units: units}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *ordersdomain.Order) {
	if m.placed != nil {
		m.placed.Add(ctx, 1)
	}
	if m.units != nil {
		m.units.Add(ctx, int64(order.ItemCount()))
	}
}

var _ ordersports.Service = (*Service)(nil)
