package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user store.
type Repository struct {
	mu         sync.RWMutex
	users      map[int64]*domain.User
	byUsername map[string]int64
	nextID     int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, byUsername: map[string]int64{}}
}

func (r *Repository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUsername[user.Username]; exists {
		return nil, ports.ErrUsernameTaken
	}
	clone := *user
	r.nextID++
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	r.byUsername[clone.Username] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.users[id]
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}
