package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog adapter.
type Repository struct {
	mu             sync.RWMutex
	categories     map[int64]*domain.Category
	products       map[int64]*domain.Product
	nextCategoryID int64
	nextProductID  int64
}

func NewRepository() *Repository {
	return &Repository{
		categories: map[int64]*domain.Category{},
		products:   map[int64]*domain.Product{},
	}
}

func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *Repository) ListProducts(_ context.Context, limit int) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.filter(func(*domain.Product) bool { return true })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *Repository) ListByCategory(_ context.Context, categoryID int64) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(p *domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *Repository) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) GetProducts(_ context.Context, ids []int64) (map[int64]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make(map[int64]*domain.Product, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			clone := *product
			result[id] = &clone
		}
	}
	return result, nil
}

func (r *Repository) SearchByName(_ context.Context, query string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(p *domain.Product) bool { return p.MatchesQuery(query) }), nil
}

func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	clone := *category
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextCategoryID++
		clone.ID = r.nextCategoryID
	} else if clone.ID > r.nextCategoryID {
		r.nextCategoryID = clone.ID
	}
	r.categories[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[clone.CategoryID]; !ok {
		return nil, ports.ErrCategoryNotFound
	}
	if clone.ID == 0 {
		r.nextProductID++
		clone.ID = r.nextProductID
	} else if clone.ID > r.nextProductID {
		r.nextProductID = clone.ID
	}
	r.products[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

// filter must be called with the read lock held.
func (r *Repository) filter(keep func(*domain.Product) bool) []*domain.Product {
	list := make([]*domain.Product, 0)
	for _, product := range r.products {
		if !keep(product) {
			continue
		}
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
