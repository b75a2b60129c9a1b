package notifications

import (
	"fmt"

	"scoops/internal/models"
)

// Compose builds the per-channel message bodies for an order event. It is
// a pure function: no I/O, deterministic given its inputs. WhatsApp and
// SMS share the same short-form body.
func Compose(order *models.Order, event EventKind) map[Channel]Message {
	var email Message
	var short string

	switch event {
	case EventNewOrderAdmin:
		email = Message{
			Subject: fmt.Sprintf("New order %s", order.ID),
			Body: fmt.Sprintf(
				"A new order has been placed.\n\nOrder: %s\nCustomer: %s\nItems: %d\nTotal: %.2f\nPayment: %s\nDeliver to: %s, %s, %s %s",
				order.ID,
				order.ShippingAddress.FullName,
				len(order.Items),
				order.TotalAmount,
				order.PaymentMethod,
				order.ShippingAddress.Address,
				order.ShippingAddress.City,
				order.ShippingAddress.State,
				order.ShippingAddress.Pincode,
			),
		}
		short = fmt.Sprintf("New order %s from %s: %d item(s), total %.2f (%s)",
			order.ID, order.ShippingAddress.FullName, len(order.Items), order.TotalAmount, order.PaymentMethod)

	case EventOrderReceivedCustomer:
		email = Message{
			Subject: fmt.Sprintf("We received your order %s", order.ID),
			Body: fmt.Sprintf(
				"Hi %s,\n\nThanks for your order! We've received it and will confirm it shortly.\n\nOrder: %s\nItems: %d\nTotal: %.2f\nPayment: %s\n\nThe Scoops team",
				order.ShippingAddress.FullName, order.ID, len(order.Items), order.TotalAmount, order.PaymentMethod),
		}
		short = fmt.Sprintf("Hi %s, we received your order %s (total %.2f). We'll confirm it shortly. - Scoops",
			order.ShippingAddress.FullName, order.ID, order.TotalAmount)

	case EventStatusChangedCustomer:
		line := statusLine(order)
		email = Message{
			Subject: fmt.Sprintf("Update on your order %s", order.ID),
			Body: fmt.Sprintf("Hi %s,\n\n%s\n\nThe Scoops team",
				order.ShippingAddress.FullName, line),
		}
		short = fmt.Sprintf("Hi %s, %s - Scoops", order.ShippingAddress.FullName, line)
	}

	return map[Channel]Message{
		ChannelEmail:    email,
		ChannelWhatsApp: {Body: short},
		ChannelSMS:      {Body: short},
	}
}

// statusLine picks the customer-facing copy for a status change. Statuses
// without dedicated copy fall through to a generic line that carries the
// raw status value.
func statusLine(order *models.Order) string {
	switch order.Status {
	case models.OrderStatusConfirmed:
		return fmt.Sprintf("your order %s has been confirmed and is being prepared.", order.ID)
	case models.OrderStatusCancelled:
		return fmt.Sprintf("your order %s has been cancelled.", order.ID)
	case models.OrderStatusDelivered:
		return fmt.Sprintf("your order %s has been delivered. Enjoy!", order.ID)
	default:
		return fmt.Sprintf("your order %s status has been updated to %q.", order.ID, string(order.Status))
	}
}
