package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

var (
	// ErrCartEmpty signals an order attempt against an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrMissingProduct signals a cart line whose product no longer resolves.
	ErrMissingProduct = errors.New("cart references a missing product")
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

// MissingProductError names the product id that failed to resolve during staging.
type MissingProductError struct {
	ProductID int64
}

func (e *MissingProductError) Error() string {
	return fmt.Sprintf("%s: product %d", ErrMissingProduct.Error(), e.ProductID)
}

func (e *MissingProductError) Unwrap() error {
	return ErrMissingProduct
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrMissingPlacementID) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrMissingProduct) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
