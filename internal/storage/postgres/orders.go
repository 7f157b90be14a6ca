package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/rype/internal/domain/model"
)

const orderColumns = `id, user_id, items, total, status, address, customer, payment_method, estimated_delivery, delivered_at, created_at, updated_at`

type itemRecord struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type customerRecord struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func toItemRecords(items []model.OrderItem) []itemRecord {
	records := make([]itemRecord, len(items))
	for i, item := range items {
		records[i] = itemRecord(item)
	}
	return records
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o        model.Order
		items    []itemRecord
		customer customerRecord
	)
	if err := row.Scan(&o.ID, &o.UserID, &items, &o.Total, &o.Status, &o.Address, &customer,
		&o.PaymentMethod, &o.EstimatedDelivery, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Items = make([]model.OrderItem, len(items))
	for i, item := range items {
		o.Items[i] = model.OrderItem(item)
	}
	o.Customer = model.CustomerInfo(customer)
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (` + orderColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING ` + orderColumns
	order.ID = uuid.NewString()

	var created *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		created, err = scanOrder(tx.QueryRow(ctx, query,
			order.ID, order.UserID, toItemRecords(order.Items), order.Total, order.Status, order.Address,
			customerRecord(order.Customer), order.PaymentMethod, order.EstimatedDelivery, order.DeliveredAt,
			order.CreatedAt, order.UpdatedAt))
		return err
	})
	if err != nil {
		return nil, mapError("create order", err)
	}
	return created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError("get order", err)
	}
	return o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError("list user orders", err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if filter.Status != nil {
		query += ` WHERE status=$1`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError("list orders", err)
	}
	return collectOrders(rows)
}

// UpdateStatus writes the change in one statement. DeliveredAt is only
// overwritten when the change carries a value.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, change model.StatusChange) (*model.Order, error) {
	const query = `UPDATE orders SET
            status = $2,
            delivered_at = COALESCE($3, delivered_at),
            updated_at = $4
        WHERE id=$1 RETURNING ` + orderColumns
	o, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, change.Status, change.DeliveredAt, change.UpdatedAt))
	if err != nil {
		return nil, mapError(fmt.Sprintf("update order %s", id), err)
	}
	return o, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.storage.pool, "count orders", `SELECT COUNT(*) FROM orders`)
}
