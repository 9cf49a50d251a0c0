package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order ledger.
type Repository struct {
	mu          sync.RWMutex
	orders      map[int64]*domain.Order
	byPlacement map[string]int64
	nextID      int64
	nextItemID  int64
}

func NewRepository() *Repository {
	return &Repository{
		orders:      map[int64]*domain.Order{},
		byPlacement: map[string]int64{},
	}
}

// Create stores the order and its items under one lock, so readers never see a partial order.
func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byPlacement[order.PlacementID]; ok {
		return r.orders[id].Clone(), nil
	}
	clone := order.Clone()
	r.nextID++
	clone.ID = r.nextID
	for i := range clone.Items {
		r.nextItemID++
		clone.Items[i].ID = r.nextItemID
		clone.Items[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	r.byPlacement[clone.PlacementID] = clone.ID
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, order.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

// Count reports the number of stored orders.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
