package model

import (
	"time"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
)

// OrderStatus describes the fulfilment lifecycle.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusQualityCheck   OrderStatus = "quality-check"
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusQualityCheck,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s belongs to the allowed status set.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod is a simulated payment choice.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return true
	}
	return false
}

// DeliveryWindow is added to creation time to produce the estimated delivery.
const DeliveryWindow = 25 * time.Minute

// OrderItem is a line of an order. Items are immutable once the order exists.
type OrderItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Image     string
}

// CustomerInfo is a snapshot of the customer taken at order time.
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// Order describes a juice order placed by a customer.
type Order struct {
	ID                string
	UserID            string
	Items             []OrderItem
	Total             float64
	Status            OrderStatus
	Address           string
	Customer          CustomerInfo
	PaymentMethod     PaymentMethod
	EstimatedDelivery time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SetStatus moves the order to status. DeliveredAt is stamped only when the
// order becomes delivered; an unknown status leaves the order untouched.
func (o *Order) SetStatus(status OrderStatus, now time.Time) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	o.Status = status
	o.UpdatedAt = now
	if status == OrderStatusDelivered {
		delivered := now
		o.DeliveredAt = &delivered
	}
	return nil
}

// ItemCount returns the total quantity across all lines.
func (o *Order) ItemCount() int {
	var n int
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *OrderStatus
}

// StatusChange is the atomic update applied to a stored order.
type StatusChange struct {
	Status      OrderStatus
	DeliveredAt *time.Time
	UpdatedAt   time.Time
}
