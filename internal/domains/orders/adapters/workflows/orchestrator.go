package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
	orderworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows persists orders through a Temporal workflow.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PersistOrder starts the placement workflow and waits for the stored order.
// The workflow id is derived from the placement id, so a duplicate start joins
// the existing run instead of writing a second order.
func (o *TemporalOrderWorkflows) PersistOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	workflowID := buildOrderPlacementWorkflowID(order.PlacementID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Order: order, TraceID: workflowTraceComponent(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
			var saved domain.Order
			if err := existingRun.Get(ctx, &saved); err != nil {
				return nil, err
			}
			return &saved, nil
		}
		return nil, err
	}
	var saved domain.Order
	if err := run.Get(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// InlineOrderWorkflows writes straight to the repository without durable orchestration.
type InlineOrderWorkflows struct {
	repo ports.Repository
}

func NewInlineOrderWorkflows(repo ports.Repository) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{repo: repo}
}

func (o *InlineOrderWorkflows) PersistOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if o == nil || o.repo == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.repo.Create(ctx, order)
}

func buildOrderPlacementWorkflowID(placementID string) string {
	return fmt.Sprintf("order-placement-%s", placementID)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
