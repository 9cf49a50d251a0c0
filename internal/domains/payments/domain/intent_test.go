package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPaymentIntentURI(t *testing.T) {
	intent, err := NewPaymentIntent("shop@upi", "Fresh Basket & Co", decimal.RequireFromString("130"))
	require.NoError(t, err)
	require.Equal(t, "upi://pay?pa=shop@upi&pn=Fresh%20Basket%20%26%20Co&am=130.00&cu=INR", intent.URI())
}

func TestNewPaymentIntent_Validation(t *testing.T) {
	_, err := NewPaymentIntent(" ", "Shop", decimal.NewFromInt(10))
	require.ErrorIs(t, err, ErrMissingPayee)

	_, err = NewPaymentIntent("shop@upi", "Shop", decimal.Zero)
	require.ErrorIs(t, err, ErrNonPositiveAmount)
}
