package ports

import (
	"context"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// ProductCatalog resolves products for cart joins.
type ProductCatalog interface {
	Get(ctx context.Context, productID int64) (*catalogdomain.Product, error)
	Resolve(ctx context.Context, productIDs []int64) (map[int64]*catalogdomain.Product, error)
}

// Service exposes cart use cases to adapters.
type Service interface {
	Add(ctx context.Context, token string, productID int64) (*domain.Cart, error)
	Increase(ctx context.Context, token string, productID int64) (*domain.Cart, error)
	Decrease(ctx context.Context, token string, productID int64) (*domain.Cart, error)
	Remove(ctx context.Context, token string, productID int64) (*domain.Cart, error)
	View(ctx context.Context, token string) (*domain.View, error)
	Snapshot(ctx context.Context, token string) (*domain.Cart, error)
	Clear(ctx context.Context, token string) error
	Transfer(ctx context.Context, fromToken, toToken string) error
}
