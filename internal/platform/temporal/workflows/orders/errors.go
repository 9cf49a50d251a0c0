package orders

import "go.temporal.io/sdk/temporal"

const errTypeInvalidInput = "InvalidOrderPlacementInput"

func temporalInputError() error {
	return temporal.NewNonRetryableApplicationError("order placement workflow requires an order", errTypeInvalidInput, nil)
}
