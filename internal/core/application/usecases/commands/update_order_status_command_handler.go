package commands

import (
	"context"

	"bloomify/internal/core/ports"
)

// UpdateOrderStatusCommandHandler broadcasts status changes and sends the
// confirmation email.
//
// The handler does not read or write the order store: the broadcast goes out for
// any order id, known or not, and the stored status is left as it is. Stored
// state changes through PatchOrderCommandHandler.
type UpdateOrderStatusCommandHandler struct {
	notifier ports.Notifier
	tasks    BackgroundRunner
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(notifier ports.Notifier, tasks BackgroundRunner) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		notifier: notifier,
		tasks:    tasks,
	}
}

// Handle broadcasts {orderId, status} first and then, if the status is
// "confirmed" in any letter case, schedules exactly one confirmation email.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.notifier.BroadcastStatus(ctx, cmd.OrderID(), cmd.Status())

	if cmd.Status().IsConfirmed() {
		confirmation := cmd.Confirmation()
		h.tasks.Go(ctx, "notify_confirmation", func(ctx context.Context) {
			h.notifier.NotifyConfirmation(ctx, confirmation)
		})
	}

	return nil
}
