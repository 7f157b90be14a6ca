package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/domain/model"
)

const productColumns = `id, name, price, image, description, ingredients, size, nutrition, category, in_stock, featured, popularity, created_at`

// nutritionRecord is the JSONB shape of the nutrition column.
type nutritionRecord struct {
	Calories int    `json:"calories"`
	VitaminC string `json:"vitaminC"`
	Sugar    string `json:"sugar"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
}

func toNutritionRecord(n model.Nutrition) nutritionRecord {
	return nutritionRecord{Calories: n.Calories, VitaminC: n.VitaminC, Sugar: n.Sugar, Protein: n.Protein, Carbs: n.Carbs}
}

func (n nutritionRecord) model() model.Nutrition {
	return model.Nutrition{Calories: n.Calories, VitaminC: n.VitaminC, Sugar: n.Sugar, Protein: n.Protein, Carbs: n.Carbs}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p         model.Product
		nutrition nutritionRecord
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Description, &p.Ingredients, &p.Size,
		&nutrition, &p.Category, &p.InStock, &p.Featured, &p.Popularity, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Nutrition = nutrition.model()
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (` + productColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING ` + productColumns
	product.ID = uuid.NewString()
	if product.Ingredients == nil {
		product.Ingredients = []string{}
	}

	created, err := scanProduct(r.storage.pool.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.Image, product.Description, product.Ingredients,
		product.Size, toNutritionRecord(product.Nutrition), product.Category, product.InStock, product.Featured,
		product.Popularity, product.CreatedAt))
	if err != nil {
		return nil, mapError("create product", err)
	}
	return created, nil
}

func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products
        WHERE ($1 = '' OR category = $1) AND (NOT $2 OR featured)
        ORDER BY popularity DESC, created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, string(filter.Category), filter.FeaturedOnly)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get product", err)
	}
	return p, nil
}

// IncrementPopularity relies on the row lock taken by UPDATE so concurrent
// increments never lose a write.
func (r *productRepository) IncrementPopularity(ctx context.Context, id string, delta int) error {
	const query = `UPDATE products SET popularity = popularity + $2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, delta)
	if err != nil {
		return mapError("increment popularity", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.storage.pool, "count products", `SELECT COUNT(*) FROM products`)
}
