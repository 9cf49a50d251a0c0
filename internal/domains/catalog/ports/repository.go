package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Repository exposes catalog reads plus the seeding writes used by out-of-band tooling.
type Repository interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	// ListProducts returns products ordered by id; limit <= 0 means no limit.
	ListProducts(ctx context.Context, limit int) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	// GetProducts resolves the given ids; ids that do not exist are absent from the result.
	GetProducts(ctx context.Context, ids []int64) (map[int64]*domain.Product, error)
	SearchByName(ctx context.Context, query string) ([]*domain.Product, error)
	SaveCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}
