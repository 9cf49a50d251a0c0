package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the activities needed to persist a placed order.
func RunOrderPlacementSequence(ctx workflow.Context, order *ordersdomain.Order) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "placementId", order.PlacementID)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var saved ordersdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), orderactivities.PersistOrderActivityName, order).Get(ctx, &saved)
	if err != nil {
		logger.Error("order placement sequence failed", "placementId", order.PlacementID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", saved.ID)
	return &saved, nil
}
