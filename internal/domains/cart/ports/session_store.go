package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// SessionStore holds cart state keyed by an opaque session token.
type SessionStore interface {
	// Load returns the cart for token, or an empty cart when none is stored.
	Load(ctx context.Context, token string) (*domain.Cart, error)
	// Update applies fn to the current cart and persists the result as one step.
	// When fn returns an error nothing is written.
	Update(ctx context.Context, token string, fn func(*domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, token string) error
}
