package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/payments/domain"
)

var (
	// ErrCartEmpty signals a payment attempt with nothing to pay for.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrNotConfigured signals a missing payee address.
	ErrNotConfigured = errors.New("upi payments are not configured")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNonPositiveAmount) {
		return fmt.Errorf("%w: %w", ErrCartEmpty, err)
	}
	if errors.Is(err, domain.ErrMissingPayee) {
		return fmt.Errorf("%w: %w", ErrNotConfigured, err)
	}
	return err
}
