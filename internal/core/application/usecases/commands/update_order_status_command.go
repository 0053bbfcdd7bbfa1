package commands

import (
	"errors"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
	"bloomify/internal/pkg/errs"
	"bloomify/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
	)
)

// UpdateOrderStatusCommand announces a status change. It carries the customer
// fields for the confirmation email because the stored order is not consulted.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID      string
	status       order.Status
	confirmation ports.Confirmation

	guard guard.ConstructorGuard
}

// CustomerDetails are the caller-supplied fields quoted in the confirmation email.
type CustomerDetails struct {
	Email        string
	Name         string
	Phone        string
	Address      string
	OrderDetails string
}

// NewUpdateOrderStatusCommand requires orderID and status; the customer details
// are optional and used verbatim.
func NewUpdateOrderStatusCommand(orderID, status string, customer CustomerDetails) (UpdateOrderStatusCommand, error) {
	var problems []error
	if orderID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("orderId"))
	}
	if status == "" {
		problems = append(problems, errs.NewValueIsRequiredError("status"))
	}
	if err := errors.Join(problems...); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: orderID,
		status:  order.Status(status),
		confirmation: ports.Confirmation{
			OrderID:       orderID,
			CustomerEmail: customer.Email,
			CustomerName:  customer.Name,
			Phone:         customer.Phone,
			Address:       customer.Address,
			OrderDetails:  customer.OrderDetails,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) OrderID() string {
	return c.orderID
}

func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

func (c UpdateOrderStatusCommand) Confirmation() ports.Confirmation {
	return c.confirmation
}
