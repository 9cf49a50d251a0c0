package orders

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	ordersmemory "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/memory"
	ordersdomain "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/orders"
)

func buildOrder(t *testing.T, placementID string) *ordersdomain.Order {
	t.Helper()
	rice, err := catalogdomain.NewProduct(1, "Rice", decimal.RequireFromString("50.00"), 1)
	require.NoError(t, err)
	dal, err := catalogdomain.NewProduct(2, "Dal", decimal.RequireFromString("30.00"), 1)
	require.NoError(t, err)
	order, err := ordersdomain.NewOrder(placementID, 9, time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC), []ordersdomain.Line{
		{Product: rice, Quantity: 2},
		{Product: dal, Quantity: 1},
	})
	require.NoError(t, err)
	return order
}

func newEnv(repo *ordersmemory.Repository) *testsuite.TestWorkflowEnvironment {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(OrderPlacementWorkflow, workflow.RegisterOptions{Name: OrderPlacementWorkflowName})
	acts := orderactivities.NewActivities(repo)
	env.RegisterActivityWithOptions(acts.PersistOrder, activity.RegisterOptions{Name: orderactivities.PersistOrderActivityName})
	return env
}

func TestOrderPlacementWorkflow_PersistsOrder(t *testing.T) {
	repo := ordersmemory.NewRepository()
	env := newEnv(repo)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Order: buildOrder(t, "p-1"), TraceID: "trace"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var saved ordersdomain.Order
	require.NoError(t, env.GetWorkflowResult(&saved))
	require.NotZero(t, saved.ID)
	require.Len(t, saved.Items, 2)
	require.True(t, decimal.RequireFromString("130").Equal(saved.TotalPrice))
	require.Equal(t, 1, repo.Count())
}

func TestOrderPlacementWorkflow_RerunWithSamePlacementIsIdempotent(t *testing.T) {
	repo := ordersmemory.NewRepository()

	first := newEnv(repo)
	first.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Order: buildOrder(t, "p-dup")})
	require.NoError(t, first.GetWorkflowError())

	second := newEnv(repo)
	second.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{Order: buildOrder(t, "p-dup")})
	require.NoError(t, second.GetWorkflowError())

	require.Equal(t, 1, repo.Count())
}

func TestOrderPlacementWorkflow_RejectsMissingOrder(t *testing.T) {
	env := newEnv(ordersmemory.NewRepository())

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
