// Package facadetest holds a storefront facade stub for HTTP layer tests.
package facadetest

import (
	"context"
	"time"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/stats"
	testhelpers "github.com/polkiloo/rype/internal/test"
	"github.com/polkiloo/rype/internal/tracking"
	"github.com/polkiloo/rype/internal/usecase"
)

// StorefrontFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions fall back to small canned responses.
type StorefrontFacadeStub struct {
	RegisterFn       func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	LoginFn          func(context.Context, string, string) (*model.User, string, error)
	ProfileFn        func(context.Context, string) (*model.User, error)
	UpdateProfileFn  func(context.Context, string, model.ProfileUpdate) (*model.User, error)
	ProductsFn       func(context.Context, string, bool) ([]model.Product, error)
	ProductFn        func(context.Context, string) (*model.Product, error)
	PlaceOrderFn     func(context.Context, string, usecase.CreateOrderInput) (*model.Order, error)
	OrderFn          func(context.Context, string, string) (*model.Order, error)
	MyOrdersFn       func(context.Context, string) ([]model.Order, error)
	TrackingFn       func(context.Context, string, string) (tracking.Session, error)
	StatsFn          func(context.Context, string) (*stats.Stats, error)
	AdminOrdersFn    func(context.Context, string, model.OrderFilter) ([]model.Order, error)
	SetOrderStatusFn func(context.Context, string, string, model.OrderStatus) (*model.Order, error)
	HealthFn         func(context.Context) (*model.Health, error)
	ParseTokenFn     func(string) (string, error)
}

// SampleUser returns a customer account used by default responses.
func SampleUser(id string) *model.User {
	return &model.User{
		ID:        id,
		Name:      "Test Customer",
		Email:     "customer@rype.com",
		Phone:     "9876543210",
		Address:   "42 Orchard Lane",
		Role:      model.RoleCustomer,
		CreatedAt: time.Unix(0, 0).UTC(),
	}
}

// SampleOrder returns a pending order owned by userID.
func SampleOrder(id, userID string) *model.Order {
	created := time.Unix(0, 0).UTC()
	return &model.Order{
		ID:                id,
		UserID:            userID,
		Items:             []model.OrderItem{{ProductID: "p-1", Name: "Classic Orange Bliss", Price: 199, Quantity: 1, Image: "🍊"}},
		Total:             199,
		Status:            model.OrderStatusPending,
		Address:           "42 Orchard Lane",
		Customer:          model.CustomerInfo{Name: "Test Customer", Email: "customer@rype.com", Phone: "9876543210"},
		PaymentMethod:     model.PaymentCard,
		EstimatedDelivery: created.Add(model.DeliveryWindow),
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func (s StorefrontFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	user := SampleUser("u-1")
	user.Name, user.Email = in.Name, in.Email
	return user, "token-u-1", nil
}

func (s StorefrontFacadeStub) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return SampleUser("u-1"), "token-u-1", nil
}

func (s StorefrontFacadeStub) Profile(ctx context.Context, userID string) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return SampleUser(userID), nil
}

func (s StorefrontFacadeStub) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, userID, update)
	}
	user := SampleUser(userID)
	if update.Name != nil {
		user.Name = *update.Name
	}
	return user, nil
}

func (s StorefrontFacadeStub) Products(ctx context.Context, category string, featuredOnly bool) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, category, featuredOnly)
	}
	return []model.Product{{ID: "p-1", Name: "Classic Orange Bliss", Price: 199, Category: model.CategoryClassic, InStock: true}}, nil
}

func (s StorefrontFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Classic Orange Bliss", Price: 199, InStock: true}, nil
}

func (s StorefrontFacadeStub) PlaceOrder(ctx context.Context, userID string, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.PlaceOrderFn != nil {
		return s.PlaceOrderFn(ctx, userID, in)
	}
	return SampleOrder("o-1", userID), nil
}

func (s StorefrontFacadeStub) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, orderID)
	}
	return SampleOrder(orderID, userID), nil
}

func (s StorefrontFacadeStub) MyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, userID)
	}
	return []model.Order{*SampleOrder("o-1", userID)}, nil
}

func (s StorefrontFacadeStub) Tracking(ctx context.Context, userID, orderID string) (tracking.Session, error) {
	if s.TrackingFn != nil {
		return s.TrackingFn(ctx, userID, orderID)
	}
	order := SampleOrder(orderID, userID)
	return tracking.Resume(*order, order.CreatedAt.Add(7*time.Minute)), nil
}

func (s StorefrontFacadeStub) Stats(ctx context.Context, actorID string) (*stats.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx, actorID)
	}
	return &stats.Stats{ByStatus: map[model.OrderStatus]int{}}, nil
}

func (s StorefrontFacadeStub) AdminOrders(ctx context.Context, actorID string, filter model.OrderFilter) ([]model.Order, error) {
	if s.AdminOrdersFn != nil {
		return s.AdminOrdersFn(ctx, actorID, filter)
	}
	return []model.Order{*SampleOrder("o-1", "u-1")}, nil
}

func (s StorefrontFacadeStub) SetOrderStatus(ctx context.Context, actorID, orderID string, status model.OrderStatus) (*model.Order, error) {
	if s.SetOrderStatusFn != nil {
		return s.SetOrderStatusFn(ctx, actorID, orderID, status)
	}
	order := SampleOrder(orderID, "u-1")
	order.Status = status
	return order, nil
}

func (s StorefrontFacadeStub) Health(ctx context.Context) (*model.Health, error) {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return &model.Health{Database: usecase.DatabaseConnected, Users: 2, Orders: 1, Products: 6}, nil
}

// ParseToken accepts "token-<id>" unless overridden.
func (s StorefrontFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return testhelpers.StrategyStub{}.ParseToken(token)
}
