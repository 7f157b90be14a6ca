package dto

import (
	"time"

	"github.com/polkiloo/rype/internal/domain/model"
)

type NutritionResponse struct {
	Calories int    `json:"calories"`
	VitaminC string `json:"vitaminC"`
	Sugar    string `json:"sugar"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
}

type ProductResponse struct {
	ID          string            `json:"_id"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Image       string            `json:"image"`
	Description string            `json:"description"`
	Ingredients []string          `json:"ingredients"`
	Size        string            `json:"size"`
	Nutrition   NutritionResponse `json:"nutrition"`
	Category    string            `json:"category"`
	InStock     bool              `json:"inStock"`
	Featured    bool              `json:"featured"`
	Popularity  int               `json:"popularity"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func NewProductResponse(p model.Product) ProductResponse {
	ingredients := p.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Ingredients: ingredients,
		Size:        p.Size,
		Nutrition:   NutritionResponse(p.Nutrition),
		Category:    string(p.Category),
		InStock:     p.InStock,
		Featured:    p.Featured,
		Popularity:  p.Popularity,
		CreatedAt:   p.CreatedAt,
	}
}

func NewProductList(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = NewProductResponse(p)
	}
	return out
}
