package app

import (
	"context"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/stats"
	"github.com/polkiloo/rype/internal/tracking"
	"github.com/polkiloo/rype/internal/usecase"
)

// StorefrontFacade adapts the use cases to the surface the HTTP handlers expect.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	products *usecase.ProductUseCase
	orders   *usecase.OrderUseCase
	stats    *usecase.StatsUseCase
	health   *usecase.HealthUseCase
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	products *usecase.ProductUseCase,
	orders *usecase.OrderUseCase,
	stats *usecase.StatsUseCase,
	health *usecase.HealthUseCase,
) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, products: products, orders: orders, stats: stats, health: health}
}

func (f *StorefrontFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *StorefrontFacade) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID string) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error) {
	return f.auth.UpdateProfile(ctx, userID, update)
}

func (f *StorefrontFacade) Products(ctx context.Context, category string, featuredOnly bool) ([]model.Product, error) {
	return f.products.List(ctx, category, featuredOnly)
}

func (f *StorefrontFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, userID string, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.Create(ctx, userID, in)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, userID, orderID)
}

func (f *StorefrontFacade) MyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListMine(ctx, userID)
}

func (f *StorefrontFacade) Tracking(ctx context.Context, userID, orderID string) (tracking.Session, error) {
	return f.orders.Tracking(ctx, userID, orderID)
}

func (f *StorefrontFacade) Stats(ctx context.Context, actorID string) (*stats.Stats, error) {
	return f.stats.Stats(ctx, actorID)
}

func (f *StorefrontFacade) AdminOrders(ctx context.Context, actorID string, filter model.OrderFilter) ([]model.Order, error) {
	return f.orders.ListAll(ctx, actorID, filter)
}

func (f *StorefrontFacade) SetOrderStatus(ctx context.Context, actorID, orderID string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.SetStatus(ctx, actorID, orderID, status)
}

func (f *StorefrontFacade) Health(ctx context.Context) (*model.Health, error) {
	return f.health.Check(ctx)
}
