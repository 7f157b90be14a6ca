// Package notify renders order e-mails and delivers them.
package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/polkiloo/rype/internal/domain/model"
)

// Message is a rendered e-mail.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

var statusLabels = map[model.OrderStatus]string{
	model.OrderStatusPending:        "received",
	model.OrderStatusPreparing:      "being prepared",
	model.OrderStatusQualityCheck:   "in quality check",
	model.OrderStatusOutForDelivery: "out for delivery",
	model.OrderStatusDelivered:      "delivered",
	model.OrderStatusCancelled:      "cancelled",
}

// OrderConfirmation renders the e-mail sent when an order is placed.
func OrderConfirmation(order model.Order) Message {
	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\nThanks for ordering from Rype! Order #%s is confirmed.\n\n", customerName(order), order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&text, "  %d x %s  ₹%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&text, "\nTotal: ₹%.2f\nPayment: %s\nDeliver to: %s\nEstimated delivery: %s\n",
		order.Total, strings.ToUpper(string(order.PaymentMethod)), order.Address, order.EstimatedDelivery.Format("15:04"))

	var body strings.Builder
	fmt.Fprintf(&body, "<p>Hi %s,</p><p>Thanks for ordering from Rype! Order <strong>#%s</strong> is confirmed.</p><ul>",
		html.EscapeString(customerName(order)), html.EscapeString(order.ID))
	for _, item := range order.Items {
		fmt.Fprintf(&body, "<li>%s %d &times; %s</li>", html.EscapeString(item.Image), item.Quantity, html.EscapeString(item.Name))
	}
	fmt.Fprintf(&body, "</ul><p>Total: <strong>₹%.2f</strong><br>Estimated delivery: <strong>%s</strong></p>",
		order.Total, order.EstimatedDelivery.Format("15:04"))

	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Rype order #%s confirmed", order.ID),
		HTML:    body.String(),
		Text:    text.String(),
	}
}

// StatusUpdate renders the e-mail sent after an admin changes the status.
func StatusUpdate(order model.Order) Message {
	label, ok := statusLabels[order.Status]
	if !ok {
		label = string(order.Status)
	}
	text := fmt.Sprintf("Hi %s,\n\nYour Rype order #%s is now %s.\n", customerName(order), order.ID, label)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your Rype order <strong>#%s</strong> is now <strong>%s</strong>.</p>",
		html.EscapeString(customerName(order)), html.EscapeString(order.ID), html.EscapeString(label))
	return Message{
		To:      order.Customer.Email,
		Subject: fmt.Sprintf("Rype order #%s is %s", order.ID, label),
		HTML:    body,
		Text:    text,
	}
}

func customerName(order model.Order) string {
	if order.Customer.Name != "" {
		return order.Customer.Name
	}
	return "there"
}
