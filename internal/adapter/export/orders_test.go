package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/polkiloo/rype/internal/domain/model"
)

func TestOrdersWorkbook(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	delivered := created.Add(22 * time.Minute)
	orders := []model.Order{
		{
			ID:            "o-2",
			Items:         []model.OrderItem{{Name: "Classic Orange Bliss", Quantity: 2}, {Name: "Citrus Boost", Quantity: 1}},
			Total:         677,
			Status:        model.OrderStatusDelivered,
			Address:       "Street 1",
			Customer:      model.CustomerInfo{Name: "Test Customer", Email: "customer@rype.com", Phone: "Not provided"},
			PaymentMethod: model.PaymentUPI,
			CreatedAt:     created,
			DeliveredAt:   &delivered,
		},
		{ID: "o-1", Status: model.OrderStatusPending, PaymentMethod: model.PaymentCard, CreatedAt: created.Add(-time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, OrdersWorkbook(&buf, orders))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, orderHeaders, rows[0])
	assert.Equal(t, "o-2", rows[1][0])
	assert.Equal(t, "2025-06-01 10:30", rows[1][1])
	assert.Equal(t, "2 x Classic Orange Bliss, 1 x Citrus Boost", rows[1][5])
	assert.Equal(t, "677", rows[1][6])
	assert.Equal(t, "UPI", rows[1][8])
	assert.Equal(t, "2025-06-01 10:52", rows[1][10])
	assert.Equal(t, "o-1", rows[2][0])
	assert.Equal(t, "pending", rows[2][7])
}

func TestOrdersWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OrdersWorkbook(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOrdersWorkbookWriteError(t *testing.T) {
	err := OrdersWorkbook(failingWriter{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "rype-orders-20250601-1030.xlsx", FileName(time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)))
}
