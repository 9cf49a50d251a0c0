package application

import (
	"context"
	"strings"
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// Service orchestrates cart use cases over a session store.
type Service struct {
	store   ports.SessionStore
	catalog ports.ProductCatalog
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store ports.SessionStore, catalog ports.ProductCatalog, opts ...Option) *Service {
	s := &Service{store: store, catalog: catalog, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add puts one unit of productID in the cart. The product must exist in the catalog.
func (s *Service) Add(ctx context.Context, token string, productID int64) (*domain.Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	if _, err := s.catalog.Get(ctx, productID); err != nil {
		return nil, mapError(err)
	}
	return s.mutate(ctx, token, func(c *domain.Cart) error {
		c.Add(productID)
		return nil
	})
}

// Increase bumps an existing line; absent lines are left alone.
func (s *Service) Increase(ctx context.Context, token string, productID int64) (*domain.Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.mutate(ctx, token, func(c *domain.Cart) error {
		c.Increase(productID)
		return nil
	})
}

// Decrease lowers an existing line, removing it at quantity one.
func (s *Service) Decrease(ctx context.Context, token string, productID int64) (*domain.Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.mutate(ctx, token, func(c *domain.Cart) error {
		c.Decrease(productID)
		return nil
	})
}

// Remove deletes a line, returning domain.ErrNotInCart when it is absent.
func (s *Service) Remove(ctx context.Context, token string, productID int64) (*domain.Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.mutate(ctx, token, func(c *domain.Cart) error {
		return c.Remove(productID)
	})
}

// View prices every line against the live catalog. A line whose product no
// longer resolves fails the whole view with ErrMissingProduct.
func (s *Service) View(ctx context.Context, token string) (*domain.View, error) {
	cart, err := s.Snapshot(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		view, _ := cart.Price(nil)
		return view, nil
	}
	products, err := s.catalog.Resolve(ctx, cart.ProductIDs())
	if err != nil {
		return nil, mapError(err)
	}
	view, err := cart.Price(products)
	if err != nil {
		return nil, mapError(err)
	}
	return view, nil
}

// Snapshot returns the stored cart without touching the catalog.
func (s *Service) Snapshot(ctx context.Context, token string) (*domain.Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, token)
}

func (s *Service) Clear(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	return s.store.Delete(ctx, token)
}

// Transfer moves the cart held under fromToken to toToken, merging quantities.
// It is used when a login rotates the session token.
func (s *Service) Transfer(ctx context.Context, fromToken, toToken string) error {
	fromToken = strings.TrimSpace(fromToken)
	toToken = strings.TrimSpace(toToken)
	if fromToken == "" || toToken == "" || fromToken == toToken {
		return nil
	}
	source, err := s.store.Load(ctx, fromToken)
	if err != nil {
		return err
	}
	if source.IsEmpty() {
		return nil
	}
	if _, err := s.mutate(ctx, toToken, func(c *domain.Cart) error {
		for id, quantity := range source.Lines {
			for i := 0; i < quantity; i++ {
				c.Add(id)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	return s.store.Delete(ctx, fromToken)
}

func (s *Service) mutate(ctx context.Context, token string, fn func(*domain.Cart) error) (*domain.Cart, error) {
	cart, err := s.store.Update(ctx, token, func(c *domain.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return cart, nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrInvalidSession
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
