// Package notifications implements the notification gateway: the operator and
// customer emails and the real-time status broadcast.
//
// Every method is best-effort. A transport failure is wrapped in an
// errs.NotificationError, logged, and swallowed; nothing is retried.
package notifications

import (
	"context"
	"log/slog"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
	"bloomify/internal/pkg/errs"
)

// StatusUpdateEvent names the real-time event carrying status changes.
const StatusUpdateEvent = "order-status-update"

// StatusUpdate is the payload of StatusUpdateEvent.
type StatusUpdate struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// Gateway implements ports.Notifier.
type Gateway struct {
	mailer      ports.Mailer
	broadcaster ports.Broadcaster
	account     string
	logger      *slog.Logger
}

// NewGateway creates a gateway sending mail from account. The same address
// receives the operator copy of every new order.
func NewGateway(mailer ports.Mailer, broadcaster ports.Broadcaster, account string, logger *slog.Logger) *Gateway {
	return &Gateway{
		mailer:      mailer,
		broadcaster: broadcaster,
		account:     account,
		logger:      logger.With("component", "notification_gateway"),
	}
}

// NotifyNewOrder emails the operator about o, copying the customer.
func (g *Gateway) NotifyNewOrder(ctx context.Context, o *order.Order) {
	msg, err := NewOrderMessage(g.account, o)
	if err != nil {
		g.logFailure(ctx, "Order email sending error", "email", o.ID(), err)
		return
	}

	if err = g.mailer.Send(ctx, msg); err != nil {
		g.logFailure(ctx, "Order email sending error", "email", o.ID(), err)
		return
	}

	g.logger.InfoContext(ctx, "Order notification email sent",
		"order_id", o.ID(),
		"to", g.account,
		"cc", o.Contact().Email,
	)
}

// NotifyConfirmation emails the customer that the order was confirmed.
func (g *Gateway) NotifyConfirmation(ctx context.Context, c ports.Confirmation) {
	if err := g.mailer.Send(ctx, ConfirmationMessage(g.account, c)); err != nil {
		g.logFailure(ctx, "Confirmation email error", "email", c.OrderID, err)
		return
	}

	g.logger.InfoContext(ctx, "Confirmation email sent", "order_id", c.OrderID, "to", c.CustomerEmail)
}

// BroadcastStatus pushes {orderId, status} to every connected subscriber.
func (g *Gateway) BroadcastStatus(ctx context.Context, orderID string, status order.Status) {
	err := g.broadcaster.Broadcast(StatusUpdateEvent, StatusUpdate{
		OrderID: orderID,
		Status:  status.String(),
	})
	if err != nil {
		g.logFailure(ctx, "Status broadcast error", "realtime", orderID, err)
		return
	}

	g.logger.DebugContext(ctx, "Status broadcast", "order_id", orderID, "status", status.String())
}

func (g *Gateway) logFailure(ctx context.Context, msg, channel, orderID string, cause error) {
	g.logger.ErrorContext(ctx, msg,
		"order_id", orderID,
		"error", errs.NewNotificationError(channel, cause),
	)
}
