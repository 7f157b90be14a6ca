package usecase

import (
	"context"
	"strings"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/repository"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// ProductUseCase serves the public catalog.
type ProductUseCase struct {
	products repository.ProductRepository
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{products: products}
}

// List returns catalog entries most popular first.
func (u *ProductUseCase) List(ctx context.Context, category string, featuredOnly bool) ([]model.Product, error) {
	filter := model.ProductFilter{FeaturedOnly: featuredOnly}
	if c := strings.ToLower(strings.TrimSpace(category)); c != "" && c != CategoryAll {
		filter.Category = model.Category(c)
	}
	return u.products.List(ctx, filter)
}

// Get returns a single product.
func (u *ProductUseCase) Get(ctx context.Context, id string) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}
