package repository

import (
	"context"

	"github.com/polkiloo/rype/internal/domain/model"
)

// ProductRepository describes catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	// IncrementPopularity must apply delta atomically on the stored document.
	IncrementPopularity(ctx context.Context, id string, delta int) error
	Count(ctx context.Context) (int64, error)
}
