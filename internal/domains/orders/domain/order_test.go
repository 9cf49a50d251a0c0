package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

func mustProduct(t *testing.T, id int64, name, price string) *catalogdomain.Product {
	t.Helper()
	p, err := catalogdomain.NewProduct(id, name, decimal.RequireFromString(price), 1)
	require.NoError(t, err)
	return p
}

func TestNewOrder_CapturesPricesAndTotal(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	order, err := NewOrder("placement-1", 7, created, []Line{
		{Product: mustProduct(t, 1, "Rice", "50.00"), Quantity: 2},
		{Product: mustProduct(t, 2, "Dal", "30.00"), Quantity: 1},
	})
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("130").Equal(order.TotalPrice))
	require.Equal(t, "Rice", order.Items[0].ProductName)
	require.True(t, decimal.RequireFromString("50").Equal(order.Items[0].UnitPrice))
	require.Equal(t, 3, order.ItemCount())
	require.Equal(t, created, order.CreatedAt)
}

func TestNewOrder_Validation(t *testing.T) {
	rice := mustProduct(t, 1, "Rice", "50.00")
	now := time.Now()

	_, err := NewOrder("p", 0, now, []Line{{Product: rice, Quantity: 1}})
	require.ErrorIs(t, err, ErrMissingUser)

	_, err = NewOrder(" ", 1, now, []Line{{Product: rice, Quantity: 1}})
	require.ErrorIs(t, err, ErrMissingPlacementID)

	_, err = NewOrder("p", 1, now, nil)
	require.ErrorIs(t, err, ErrNoItems)

	_, err = NewOrder("p", 1, now, []Line{{Product: rice, Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder("p", 1, now, []Line{{Quantity: 1}})
	require.ErrorIs(t, err, ErrMissingProduct)
}

func TestTotalIsNotRecomputedFromLaterPrices(t *testing.T) {
	rice := mustProduct(t, 1, "Rice", "50.00")
	order, err := NewOrder("p", 1, time.Now(), []Line{{Product: rice, Quantity: 2}})
	require.NoError(t, err)

	rice.Price = decimal.RequireFromString("75.00")

	require.True(t, decimal.RequireFromString("100").Equal(order.TotalPrice))
	require.True(t, decimal.RequireFromString("100").Equal(order.ItemsTotal()))
}
