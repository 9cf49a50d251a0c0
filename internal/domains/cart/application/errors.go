package application

import (
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

var (
	// ErrMissingProduct signals a stored cart line whose product no longer exists.
	ErrMissingProduct = errors.New("cart references a missing product")
	// ErrProductNotFound signals an attempt to add a product the catalog does not know.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidSession signals a blank session token.
	ErrInvalidSession = errors.New("session token is required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnresolvedLine) {
		return fmt.Errorf("%w: %w", ErrMissingProduct, err)
	}
	if errors.Is(err, catalogports.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrProductNotFound, err)
	}
	return err
}
