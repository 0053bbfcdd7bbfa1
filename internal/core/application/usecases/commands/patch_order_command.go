package commands

import (
	"errors"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/pkg/errs"
	"bloomify/internal/pkg/guard"
)

var (
	ErrPatchOrderCommandIsNotConstructed = errors.New(
		"PatchOrderCommand must be created via NewPatchOrderCommand constructor",
	)
)

// PatchOrderCommand is a shallow partial update of a stored order.
type PatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewPatchOrderCommand requires the order id. The patch itself may be empty.
func NewPatchOrderCommand(orderID string, patch order.Patch) (PatchOrderCommand, error) {
	if orderID == "" {
		return PatchOrderCommand{}, errs.NewValueIsRequiredError("orderId")
	}

	return PatchOrderCommand{
		orderID: orderID,
		patch:   patch,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrPatchOrderCommandIsNotConstructed)
}

func (c PatchOrderCommand) OrderID() string {
	return c.orderID
}

func (c PatchOrderCommand) Patch() order.Patch {
	return c.patch
}
