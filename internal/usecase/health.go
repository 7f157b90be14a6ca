package usecase

import (
	"context"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/repository"
)

const (
	DatabaseConnected    = "Connected"
	DatabaseDisconnected = "Disconnected"
)

// HealthUseCase reports store connectivity and collection sizes.
type HealthUseCase struct {
	checker  repository.HealthChecker
	users    repository.UserRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
}

// NewHealthUseCase constructs HealthUseCase.
func NewHealthUseCase(checker repository.HealthChecker, users repository.UserRepository, orders repository.OrderRepository, products repository.ProductRepository) *HealthUseCase {
	return &HealthUseCase{checker: checker, users: users, orders: orders, products: products}
}

// Check pings the store and counts documents. The returned health is
// populated as far as it got, even when err is non-nil.
func (u *HealthUseCase) Check(ctx context.Context) (*model.Health, error) {
	health := &model.Health{Database: DatabaseConnected}
	if err := u.checker.HealthCheck(ctx); err != nil {
		health.Database = DatabaseDisconnected
		return health, err
	}

	var err error
	if health.Users, err = u.users.Count(ctx); err != nil {
		return health, err
	}
	if health.Orders, err = u.orders.Count(ctx); err != nil {
		return health, err
	}
	if health.Products, err = u.products.Count(ctx); err != nil {
		return health, err
	}
	return health, nil
}
