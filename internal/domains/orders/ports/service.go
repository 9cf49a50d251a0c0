package ports

import (
	"context"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// CartReader exposes the cart operations order placement depends on.
type CartReader interface {
	Snapshot(ctx context.Context, token string) (*cartdomain.Cart, error)
	Clear(ctx context.Context, token string) error
}

// ProductCatalog batch-resolves products. Missing ids are absent from the result.
type ProductCatalog interface {
	Resolve(ctx context.Context, productIDs []int64) (map[int64]*catalogdomain.Product, error)
}

// WorkflowOrchestrator persists a built order, either inline or through a durable workflow.
type WorkflowOrchestrator interface {
	PersistOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// PlaceOrderInput identifies who is ordering and which session cart to consume.
type PlaceOrderInput struct {
	UserID       int64
	SessionToken string
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, userID int64) ([]*domain.Order, error)
}
