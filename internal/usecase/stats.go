package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/repository"
	"github.com/polkiloo/rype/internal/domain/stats"
)

// StatsUseCase builds the admin dashboard summary.
type StatsUseCase struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	products repository.ProductRepository
	now      func() time.Time
}

// NewStatsUseCase constructs StatsUseCase.
func NewStatsUseCase(orders repository.OrderRepository, users repository.UserRepository, products repository.ProductRepository) *StatsUseCase {
	return &StatsUseCase{orders: orders, users: users, products: products, now: time.Now}
}

// Stats aggregates all orders for an admin.
func (u *StatsUseCase) Stats(ctx context.Context, actorID string) (*stats.Stats, error) {
	if err := requireAdmin(ctx, u.users, actorID); err != nil {
		return nil, err
	}

	orders, err := u.orders.List(ctx, model.OrderFilter{})
	if err != nil {
		return nil, err
	}
	result := stats.Compute(orders, u.now())

	if result.TotalCustomers, err = u.users.CountByRole(ctx, model.RoleCustomer); err != nil {
		return nil, err
	}
	if result.TotalProducts, err = u.products.Count(ctx); err != nil {
		return nil, err
	}
	return &result, nil
}
