package ports

import (
	"context"

	"bloomify/internal/core/domain/model/order"
)

// MailMessage is a plain-text email.
type MailMessage struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
}

// Mailer sends email. An error means the message was not handed to the server.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// Broadcaster pushes an event to every currently connected real-time subscriber.
// Delivery is not acknowledged and nothing is replayed for late subscribers.
type Broadcaster interface {
	Broadcast(event string, payload any) error
}

// Confirmation carries the caller-supplied fields of a confirmation email.
// They are taken from the status update request, not from the stored order.
type Confirmation struct {
	OrderID       string
	CustomerEmail string
	CustomerName  string
	Phone         string
	Address       string
	OrderDetails  string
}

// Notifier is the notification gateway used by the order lifecycle. Its methods
// never fail: transport errors are logged inside the gateway.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o *order.Order)
	NotifyConfirmation(ctx context.Context, c Confirmation)
	BroadcastStatus(ctx context.Context, orderID string, status order.Status)
}
