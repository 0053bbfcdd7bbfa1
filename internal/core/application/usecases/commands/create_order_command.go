package commands

import (
	"errors"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a customer's request to place an order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(contact, "", cart)
//	if err != nil {
//	    // errors.Is(err, errs.ErrValueIsRequired): respond 400
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	contact order.Contact
	status  order.Status
	cart    order.Cart

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that address, phone, customer and email are
// present. An empty status becomes "pending" and a nil cart an empty one.
func NewCreateOrderCommand(contact order.Contact, status string, cart order.Cart) (CreateOrderCommand, error) {
	if err := contact.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		contact: contact,
		status:  order.StatusOrDefault(status),
		cart:    cart.Clone(),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Contact() order.Contact {
	return c.contact
}

func (c CreateOrderCommand) Status() order.Status {
	return c.status
}

func (c CreateOrderCommand) Cart() order.Cart {
	return c.cart.Clone()
}
