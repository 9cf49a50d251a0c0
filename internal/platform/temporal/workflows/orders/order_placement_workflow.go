package orders

import (
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput carries the built order and the originating trace.
type OrderPlacementWorkflowInput struct {
	Order   *ordersdomain.Order
	TraceID string
}

// OrderPlacementWorkflow persists a placed order durably.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	if input.Order == nil {
		return nil, temporalInputError()
	}
	placementID := input.Order.PlacementID
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "placementId", placementID)...)
	saved, err := sequences.RunOrderPlacementSequence(ctx, input.Order)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "placementId", placementID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", saved.ID)...)
	return saved, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
