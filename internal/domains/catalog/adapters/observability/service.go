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

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) Home(ctx context.Context) (*catalogports.HomeView, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Home")
	defer span.End()
	result, err := s.inner.Home(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load home page")
	}
	span.SetAttributes(
		attribute.Int("catalog.categories.count", len(result.Categories)),
		attribute.Int("catalog.featured.count", len(result.Featured)),
	)
	return result, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListCategories")
	defer span.End()
	result, err := s.inner.ListCategories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	return result, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListAll")
	defer span.End()
	result, err := s.inner.ListAll(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalog.products.count", len(result)))
	return result, nil
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64) (*catalogports.CategoryListing, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListByCategory", trace.WithAttributes(attribute.Int64("category.id", categoryID)))
	defer span.End()
	result, err := s.inner.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list category products", slog.Int64("category.id", categoryID))
	}
	span.SetAttributes(attribute.Int("catalog.products.count", len(result.Products)))
	return result, nil
}

func (s *Service) Get(ctx context.Context, productID int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Get", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()
	result, err := s.inner.Get(ctx, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", productID))
	}
	return result, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Search", trace.WithAttributes(attribute.String("catalog.query", query)))
	defer span.End()
	result, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "search failed", slog.String("query", query))
	}
	s.metrics.recordSearch(ctx, len(result))
	span.SetAttributes(attribute.Int("catalog.results.count", len(result)))
	return result, nil
}

func (s *Service) Resolve(ctx context.Context, productIDs []int64) (map[int64]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Resolve", trace.WithAttributes(attribute.Int("product.ids.count", len(productIDs))))
	defer span.End()
	result, err := s.inner.Resolve(ctx, productIDs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to resolve products")
	}
	return result, nil
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
	searches metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	searches, _ := m.Int64Counter("catalog.service.searches", metric.WithDescription("Number of product searches"))
	return serviceMetrics{searches: searches}
}

func (m serviceMetrics) recordSearch(ctx context.Context, results int) {
	if m.searches != nil {
		m.searches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("catalog.search.empty", results == 0)))
	}
}

var _ catalogports.Service = (*Service)(nil)
