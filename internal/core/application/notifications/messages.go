package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bloomify/internal/core/domain/model/order"
	"bloomify/internal/core/ports"
)

const (
	newOrderSubject     = "New Order Received! 📦"
	confirmationSubject = "Your Order is Confirmed! 🎉"
)

const newOrderTemplate = "New order received!\n\n" +
	"Customer: %s\n" +
	"Email: %s\n" +
	"Phone: %s\n" +
	"Address: %s\n" +
	"Total Price: %s\n" +
	"Order Details: %s\n\n" +
	"Check the dashboard for more details."

// The estimate below is fixed text and does not read the order's estimatedDelivery.
const confirmationTemplate = `Dear %s, 

Great news! 🎉 Your order has been confirmed successfully and is now being prepared by our expert chefs. 🍔🍕🍟 

🚀 Estimated Delivery Time: 30 minutes  
📌 Order ID: %s  
📍 Delivery Address: %s  
📞 Contact Number: %s  
🛒 Order Details: %s  

⏳ Please be ready to receive your order. Kindly keep your phone nearby, and make sure your doorbell is working so that our rider can deliver your delicious meal hassle-free. 🚴‍♂️  

Thank you for choosing **Bloomify**! 🌿 We’re committed to serving you fresh and delicious fast food right at your doorstep. If you have any questions, feel free to contact us.  

Bon Appétit! 🍽️  
**Team Bloomify**  
`

// NewOrderMessage builds the operator email for a freshly created order. The
// customer is copied.
func NewOrderMessage(account string, o *order.Order) (ports.MailMessage, error) {
	cart, err := renderCart(o.Cart())
	if err != nil {
		return ports.MailMessage{}, err
	}

	contact := o.Contact()
	return ports.MailMessage{
		From:    account,
		To:      []string{account},
		Cc:      []string{contact.Email},
		Subject: newOrderSubject,
		Body: fmt.Sprintf(newOrderTemplate,
			contact.Customer,
			contact.Email,
			contact.Phone,
			contact.Address,
			strconv.FormatFloat(o.OrderPrice(), 'f', -1, 64),
			cart,
		),
	}, nil
}

// ConfirmationMessage builds the customer email sent when an order is confirmed.
func ConfirmationMessage(account string, c ports.Confirmation) ports.MailMessage {
	return ports.MailMessage{
		From:    account,
		To:      []string{c.CustomerEmail},
		Subject: confirmationSubject,
		Body: fmt.Sprintf(confirmationTemplate,
			c.CustomerName,
			c.OrderID,
			c.Address,
			c.Phone,
			c.OrderDetails,
		),
	}
}

// renderCart pretty-prints the cart with two-space indentation.
func renderCart(cart order.Cart) (string, error) {
	items := make([]map[string]any, len(cart))
	for i, item := range cart {
		items[i] = item.Fields()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return "", fmt.Errorf("render cart: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
