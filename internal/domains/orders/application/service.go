package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// Service orchestrates order placement and history.
type Service struct {
	repo         ports.Repository
	carts        ports.CartReader
	catalog      ports.ProductCatalog
	orchestrator ports.WorkflowOrchestrator
	logger       *slog.Logger
	now          func() time.Time
	placementID  func() string
}

type Option func(*Service)

// WithOrchestrator routes persistence through a workflow engine instead of the repository.
func WithOrchestrator(o ports.WorkflowOrchestrator) Option {
	return func(s *Service) { s.orchestrator = o }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPlacementIDs overrides placement id generation.
func WithPlacementIDs(next func() string) Option {
	return func(s *Service) {
		if next != nil {
			s.placementID = next
		}
	}
}

func NewService(repo ports.Repository, carts ports.CartReader, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		carts:       carts,
		catalog:     catalog,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
		placementID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder converts the session cart into a persisted order and clears the cart.
// Every product is resolved before anything is written, so a stale cart line
// leaves no order behind.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	cart, err := s.carts.Snapshot(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	ids := cart.ProductIDs()
	products, err := s.catalog.Resolve(ctx, ids)
	if err != nil {
		return nil, err
	}
	lines := make([]domain.Line, 0, len(ids))
	for _, id := range ids {
		product, ok := products[id]
		if !ok || product == nil {
			return nil, &MissingProductError{ProductID: id}
		}
		lines = append(lines, domain.Line{Product: product, Quantity: cart.Quantity(id)})
	}

	order, err := domain.NewOrder(s.placementID(), input.UserID, s.now(), lines)
	if err != nil {
		return nil, mapError(err)
	}

	saved, err := s.persist(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.carts.Clear(ctx, input.SessionToken); err != nil {
		// The order is already committed; report success and leave the stale cart.
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to clear cart after order placement",
			slog.Int64("order.id", saved.ID),
			slog.String("error", err.Error()),
		)
	}
	return saved, nil
}

// ListOrders returns the user's orders newest first with items attached.
func (s *Service) ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error) {
	if userID <= 0 {
		return nil, mapError(domain.ErrMissingUser)
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) persist(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if s.orchestrator != nil {
		return s.orchestrator.PersistOrder(ctx, order)
	}
	return s.repo.Create(ctx, order)
}

var _ ports.Service = (*Service)(nil)
