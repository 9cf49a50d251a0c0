package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// HomeView is what the landing page shows.
type HomeView struct {
	Categories []*domain.Category
	Featured   []*domain.Product
}

// CategoryListing is a category together with its products.
type CategoryListing struct {
	Category *domain.Category
	Products []*domain.Product
}

// Service exposes catalog read use cases to adapters.
type Service interface {
	Home(ctx context.Context) (*HomeView, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) (*CategoryListing, error)
	Get(ctx context.Context, productID int64) (*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	Resolve(ctx context.Context, productIDs []int64) (map[int64]*domain.Product, error)
}
