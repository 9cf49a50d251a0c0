package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// ErrNotFound is returned when an order cannot be located.
var ErrNotFound = errors.New("order not found")

// Repository persists orders with their items.
type Repository interface {
	// Create stores the order and its items in one transaction, assigning ids.
	// A second Create with the same placement id returns the stored order unchanged.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// ListByUser returns the user's orders newest first, ties broken by id descending.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
}
