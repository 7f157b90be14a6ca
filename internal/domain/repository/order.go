package repository

import (
	"context"

	"github.com/polkiloo/rype/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// UpdateStatus applies change as a single atomic document update and
	// returns the stored order after the write.
	UpdateStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error)
	Count(ctx context.Context) (int64, error)
}
