package usecase

import (
	"math"
	"regexp"
	"strings"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
)

// Defaults applied to incomplete order input.
const (
	DefaultItemName     = "Fresh Juice"
	DefaultItemImage    = "🍊"
	DefaultItemQuantity = 1
	DefaultAddress      = "Address not specified"
	DefaultPhone        = "Not provided"
	DefaultPayment      = model.PaymentCard
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether email looks like an address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lowercases and trims an address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ItemInput is an order line as submitted by a client.
type ItemInput struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Image     string
}

// NormalizeItems fills missing item fields with defaults. A blank name or
// image takes the default, a negative or non-finite price becomes 0 and a
// quantity below 1 becomes 1.
func NormalizeItems(in []ItemInput) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(in))
	for _, raw := range in {
		item := model.OrderItem{
			ProductID: strings.TrimSpace(raw.ProductID),
			Name:      strings.TrimSpace(raw.Name),
			Price:     raw.Price,
			Quantity:  raw.Quantity,
			Image:     raw.Image,
		}
		if item.Name == "" {
			item.Name = DefaultItemName
		}
		if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			item.Price = 0
		}
		if item.Quantity < 1 {
			item.Quantity = DefaultItemQuantity
		}
		if item.Image == "" {
			item.Image = DefaultItemImage
		}
		items = append(items, item)
	}
	return items
}

// ValidateTotal rejects a missing, non-finite or non-positive total.
func ValidateTotal(total *float64) (float64, error) {
	if total == nil {
		return 0, domainErrors.ErrInvalidTotal
	}
	v := *total
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, domainErrors.ErrInvalidTotal
	}
	return v, nil
}

// ResolvePaymentMethod defaults an empty method to card.
func ResolvePaymentMethod(raw string) (model.PaymentMethod, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return DefaultPayment, nil
	}
	method := model.PaymentMethod(raw)
	if !method.Valid() {
		return "", domainErrors.ErrInvalidPaymentMethod
	}
	return method, nil
}

// ResolveAddress prefers the requested address, then the customer's profile address.
func ResolveAddress(requested string, customer *model.User) string {
	if a := strings.TrimSpace(requested); a != "" {
		return a
	}
	if customer != nil {
		if a := strings.TrimSpace(customer.Address); a != "" {
			return a
		}
	}
	return DefaultAddress
}

// SnapshotCustomer copies contact details from the customer at order time.
func SnapshotCustomer(customer *model.User) model.CustomerInfo {
	info := model.CustomerInfo{Phone: DefaultPhone}
	if customer == nil {
		return info
	}
	info.Name = customer.Name
	info.Email = customer.Email
	if p := strings.TrimSpace(customer.Phone); p != "" {
		info.Phone = p
	}
	return info
}
