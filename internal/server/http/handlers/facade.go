package handlers

import (
	"context"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/stats"
	"github.com/polkiloo/rype/internal/server/http/middleware"
	"github.com/polkiloo/rype/internal/tracking"
	"github.com/polkiloo/rype/internal/usecase"
)

// AuthFacade describes account operations required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error)
}

// CatalogFacade exposes the product catalog.
type CatalogFacade interface {
	Products(ctx context.Context, category string, featuredOnly bool) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID string, in usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, userID, orderID string) (*model.Order, error)
	MyOrders(ctx context.Context, userID string) ([]model.Order, error)
	Tracking(ctx context.Context, userID, orderID string) (tracking.Session, error)
}

// AdminFacade provides dashboard and order management operations.
type AdminFacade interface {
	Stats(ctx context.Context, actorID string) (*stats.Stats, error)
	AdminOrders(ctx context.Context, actorID string, filter model.OrderFilter) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, actorID, orderID string, status model.OrderStatus) (*model.Order, error)
}

// HealthFacade reports service health.
type HealthFacade interface {
	Health(ctx context.Context) (*model.Health, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	AdminFacade
	HealthFacade
	middleware.TokenParser
}
