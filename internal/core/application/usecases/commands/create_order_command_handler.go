package commands

import (
	"context"
	"time"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
)

// CreateOrderCommandHandler creates orders and notifies the operator.
//
// The order is stored and returned before the notification starts; the email
// runs in the background and its outcome never reaches the caller.
type CreateOrderCommandHandler struct {
	repo     ports.OrderRepository
	ids      IDGenerator
	notifier ports.Notifier
	tasks    BackgroundRunner
	clock    func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	ids IDGenerator,
	notifier ports.Notifier,
	tasks BackgroundRunner,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		repo:     repo,
		ids:      ids,
		notifier: notifier,
		tasks:    tasks,
		clock:    time.Now,
	}
}

// WithClock returns a copy of the handler reading creation time from clock.
func (h CreateOrderCommandHandler) WithClock(clock func() time.Time) CreateOrderCommandHandler {
	h.clock = clock
	return h
}

// Handle generates the id, derives price and delivery estimate, stores the order
// and schedules the new-order email.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := order.NewOrder(h.ids.Generate(), cmd.Contact(), cmd.Status(), cmd.Cart(), h.clock())
	if err != nil {
		return nil, err
	}

	if err = h.repo.Add(ctx, created); err != nil {
		return nil, err
	}

	notified := created.Clone()
	h.tasks.Go(ctx, "notify_new_order", func(ctx context.Context) {
		h.notifier.NotifyNewOrder(ctx, notified)
	})

	return created, nil
}
