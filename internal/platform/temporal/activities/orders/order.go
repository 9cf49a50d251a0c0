package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// PersistOrderActivityName persists a built order aggregate with its items.
const PersistOrderActivityName = "orders.activities.PersistOrder"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	repo ordersports.Repository
}

// NewActivities wires the order repository into the Temporal activities bundle.
func NewActivities(repo ordersports.Repository) *Activities {
	return &Activities{repo: repo}
}

// PersistOrder stores the order in one transaction. Retries with the same
// placement id return the order written by the first successful attempt.
func (a *Activities) PersistOrder(ctx context.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		logger.Error("order persist activity not initialized")
		return nil, errors.New("order persist activity not initialized")
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	logger.Info("PersistOrder activity started", "placementId", order.PlacementID, "userId", order.UserID)
	saved, err := a.repo.Create(ctx, order)
	if err != nil {
		logger.Error("PersistOrder activity failed", "placementId", order.PlacementID, "error", err)
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", saved.ID, "placementId", saved.PlacementID)
	return saved, nil
}
