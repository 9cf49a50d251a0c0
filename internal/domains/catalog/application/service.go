package application

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// FeaturedLimit caps the product sample shown on the home page.
const FeaturedLimit = 6

// Service orchestrates catalog read use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Home returns every category plus a featured product sample.
func (s *Service) Home(ctx context.Context) (*ports.HomeView, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	featured, err := s.repo.ListProducts(ctx, FeaturedLimit)
	if err != nil {
		return nil, err
	}
	return &ports.HomeView{Categories: categories, Featured: featured}, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, 0)
}

// ListByCategory fails with ErrCategoryNotFound when the category is unknown.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) (*ports.CategoryListing, error) {
	category, err := s.repo.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	products, err := s.repo.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &ports.CategoryListing{Category: category, Products: products}, nil
}

func (s *Service) Get(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, productID)
}

// Search matches product names case-insensitively. A blank query yields no results.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	query = domain.NormalizeQuery(query)
	if query == "" {
		return []*domain.Product{}, nil
	}
	return s.repo.SearchByName(ctx, query)
}

// Resolve batch-loads products by id for cart and order joins.
func (s *Service) Resolve(ctx context.Context, productIDs []int64) (map[int64]*domain.Product, error) {
	if len(productIDs) == 0 {
		return map[int64]*domain.Product{}, nil
	}
	return s.repo.GetProducts(ctx, productIDs)
}

var _ ports.Service = (*Service)(nil)
