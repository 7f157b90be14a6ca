package model

import "time"

// Category groups juices in the catalog.
type Category string

const (
	CategoryFruit    Category = "fruit"
	CategoryCitrus   Category = "citrus"
	CategoryClassic  Category = "classic"
	CategoryBerry    Category = "berry"
	CategoryTropical Category = "tropical"
	CategoryDetox    Category = "detox"
	CategoryImmunity Category = "immunity"
	CategoryFusion   Category = "fusion"
	CategoryBoost    Category = "boost"
	CategorySeasonal Category = "seasonal"
)

// Catalog defaults applied when a product omits them.
const (
	DefaultProductImage    = "🍊"
	DefaultProductSize     = "500ml"
	DefaultProductCategory = CategoryFruit
)

// Nutrition holds per-serving nutrition facts.
type Nutrition struct {
	Calories int
	VitaminC string
	Sugar    string
	Protein  string
	Carbs    string
}

// Product is a catalog entry.
type Product struct {
	ID          string
	Name        string
	Price       float64
	Image       string
	Description string
	Ingredients []string
	Size        string
	Nutrition   Nutrition
	Category    Category
	InStock     bool
	Featured    bool
	Popularity  int
	CreatedAt   time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category     Category
	FeaturedOnly bool
}

// Health summarises storage state for the health endpoint.
type Health struct {
	Database string
	Users    int64
	Orders   int64
	Products int64
}
