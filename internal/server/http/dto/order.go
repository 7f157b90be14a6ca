package dto

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/usecase"
)

// Amount accepts a JSON number or a numeric string. An unparsable value is
// kept as NaN so validation reports it instead of the decoder.
type Amount struct {
	Value *float64
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		a.Value = nil
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			a.Value = nil
			return nil
		}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = math.NaN()
	}
	a.Value = &v
	return nil
}

// Float returns the amount or zero when absent.
func (a Amount) Float() float64 {
	if a.Value == nil {
		return 0
	}
	return *a.Value
}

// ProductRef is a product reference sent as a string or a number. Any other
// JSON value decodes to an empty reference.
type ProductRef string

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		*r = ProductRef(strings.TrimSpace(unquoted))
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		*r = ProductRef(raw)
		return nil
	}
	*r = ""
	return nil
}

// Quantity accepts a JSON number or a numeric string. Fractions are
// truncated; anything unparsable decodes to zero, which normalisation turns
// into one.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v > math.MaxInt32 {
		*q = 0
		return nil
	}
	*q = Quantity(v)
	return nil
}

// OrderItemRequest is one cart line. Clients send the product reference as
// id, _id or productId.
type OrderItemRequest struct {
	ID        ProductRef `json:"id"`
	MongoID   ProductRef `json:"_id"`
	ProductID ProductRef `json:"productId"`
	Name      string     `json:"name"`
	Price     Amount     `json:"price"`
	Quantity  Quantity   `json:"quantity"`
	Image     string     `json:"image"`
}

func (r OrderItemRequest) productRef() string {
	for _, id := range []ProductRef{r.ProductID, r.ID, r.MongoID} {
		if ref := strings.TrimSpace(string(id)); ref != "" {
			return ref
		}
	}
	return ""
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	Total         Amount             `json:"total"`
	Address       string             `json:"address"`
	PaymentMethod string             `json:"paymentMethod"`
}

// Input converts the payload into use case input.
func (r CreateOrderRequest) Input() usecase.CreateOrderInput {
	items := make([]usecase.ItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = usecase.ItemInput{
			ProductID: item.productRef(),
			Name:      item.Name,
			Price:     item.Price.Float(),
			Quantity:  int(item.Quantity),
			Image:     item.Image,
		}
	}
	return usecase.CreateOrderInput{
		Items:         items,
		Total:         r.Total.Value,
		Address:       r.Address,
		PaymentMethod: r.PaymentMethod,
	}
}

// StatusRequest is the admin status update payload.
type StatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderResponse struct {
	ID                string              `json:"_id"`
	UserID            string              `json:"userId"`
	Items             []OrderItemResponse `json:"items"`
	Total             float64             `json:"total"`
	Status            string              `json:"status"`
	Address           string              `json:"address"`
	Customer          CustomerResponse    `json:"customerInfo"`
	PaymentMethod     string              `json:"paymentMethod"`
	EstimatedDelivery time.Time           `json:"estimatedDelivery"`
	DeliveredAt       *time.Time          `json:"deliveredAt,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func NewOrderResponse(o model.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse(item)
	}
	return OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             items,
		Total:             o.Total,
		Status:            string(o.Status),
		Address:           o.Address,
		Customer:          CustomerResponse(o.Customer),
		PaymentMethod:     string(o.PaymentMethod),
		EstimatedDelivery: o.EstimatedDelivery,
		DeliveredAt:       o.DeliveredAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func NewOrderList(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o)
	}
	return out
}
