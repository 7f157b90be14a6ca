package tracking

import (
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/rype/internal/domain/model"
)

// deliveryMinutes is the promised delivery window used for courier ETAs.
const deliveryMinutes = int(model.DeliveryWindow / time.Minute)

// Courier is the simulated rider shown once an order is out for delivery.
type Courier struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Vehicle    string  `json:"vehicle"`
	Phone      string  `json:"phone"`
	Distance   string  `json:"distance"`
	ETAMinutes int     `json:"etaMinutes"`
}

func newCourier(elapsed int) *Courier {
	c := &Courier{
		ID:       uuid.NewString(),
		Name:     "Raj Kumar",
		Rating:   4.8,
		Vehicle:  "🚴 Bicycle",
		Phone:    "+91 98765 43210",
		Distance: "1.2 km away",
	}
	c.refresh(elapsed)
	return c
}

func (c *Courier) refresh(elapsed int) {
	c.ETAMinutes = max(1, deliveryMinutes-elapsed)
}

// OrderRef is the part of an order the tracker needs.
type OrderRef struct {
	ID        string            `json:"id"`
	Status    model.OrderStatus `json:"status"`
	Total     float64           `json:"total"`
	Items     int               `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
}

// RefFromOrder extracts an OrderRef.
func RefFromOrder(o model.Order) OrderRef {
	return OrderRef{
		ID:        o.ID,
		Status:    o.Status,
		Total:     o.Total,
		Items:     o.ItemCount(),
		CreatedAt: o.CreatedAt,
	}
}

// Session is the tracking state of one order.
type Session struct {
	Order          OrderRef `json:"order"`
	ElapsedMinutes int      `json:"elapsedMinutes"`
	Stage          Stage    `json:"stage"`
	Courier        *Courier `json:"courier,omitempty"`
}

// Resume builds a session for order as of now. Elapsed time is taken from
// the order's creation and the stage from its status when it has one.
func Resume(order model.Order, now time.Time) Session {
	elapsed := 0
	if !order.CreatedAt.IsZero() && now.After(order.CreatedAt) {
		elapsed = int(now.Sub(order.CreatedAt) / time.Minute)
	}
	status := order.Status
	s := Session{
		Order:          RefFromOrder(order),
		ElapsedMinutes: elapsed,
		Stage:          DeriveStage(elapsed, &status),
	}
	s.syncCourier()
	return s
}

// Tick advances the session by one minute.
func (s *Session) Tick() {
	s.Advance(1)
}

// Advance adds minutes to the elapsed time. The stage never moves backwards.
func (s *Session) Advance(minutes int) {
	if minutes <= 0 {
		return
	}
	s.ElapsedMinutes += minutes
	if derived := DeriveStage(s.ElapsedMinutes, nil); derived > s.Stage {
		s.Stage = derived
	}
	s.syncCourier()
}

// Delivered reports whether the final stage was reached.
func (s *Session) Delivered() bool {
	return s.Stage >= StageDelivered
}

// StageName returns the display name of the current stage.
func (s *Session) StageName() string {
	return s.Stage.String()
}

// syncCourier attaches the rider once the order is out for delivery, either
// by stage or because the out-for-delivery threshold has elapsed.
func (s *Session) syncCourier() {
	if s.Stage < StageOutForDelivery && s.ElapsedMinutes < StageOutForDelivery.Threshold() {
		return
	}
	if s.Courier == nil {
		s.Courier = newCourier(s.ElapsedMinutes)
		return
	}
	s.Courier.refresh(s.ElapsedMinutes)
}

func (s Session) clone() Session {
	if s.Courier != nil {
		c := *s.Courier
		s.Courier = &c
	}
	return s
}

// Latest picks the newest of orders (listed newest first) if it was placed
// within FreshnessWindow of now.
func Latest(orders []model.Order, now time.Time) (model.Order, bool) {
	if len(orders) == 0 {
		return model.Order{}, false
	}
	latest := orders[0]
	if now.Sub(latest.CreatedAt) >= FreshnessWindow {
		return model.Order{}, false
	}
	return latest, true
}
