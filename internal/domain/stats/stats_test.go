package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/polkiloo/rype/internal/domain/model"
)

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil, time.Now())

	assert.Equal(t, 0, got.TotalOrders)
	assert.Equal(t, 0, got.RecentOrders)
	assert.Zero(t, got.Revenue)
	assert.Zero(t, got.TodayRevenue)
	assert.Zero(t, got.AvgOrderValue)
	for _, status := range model.OrderStatuses {
		assert.Equal(t, 0, got.Count(status), status)
	}
}

func TestComputeRevenueOnlyCountsDelivered(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Status: model.OrderStatusPending, Total: 80, CreatedAt: now.Add(-time.Hour)},
		{Status: model.OrderStatusDelivered, Total: 100, CreatedAt: now.Add(-time.Hour)},
		{Status: model.OrderStatusDelivered, Total: 50, CreatedAt: now.Add(-48 * time.Hour)},
		{Status: model.OrderStatusCancelled, Total: 200, CreatedAt: now.Add(-time.Hour)},
	}

	got := Compute(orders, now)

	assert.Equal(t, 4, got.TotalOrders)
	assert.Equal(t, 150.0, got.Revenue)
	assert.Equal(t, 100.0, got.TodayRevenue)
	assert.Equal(t, 75.0, got.AvgOrderValue)
	assert.Equal(t, 1, got.Count(model.OrderStatusPending))
	assert.Equal(t, 2, got.Count(model.OrderStatusDelivered))
	assert.Equal(t, 1, got.Count(model.OrderStatusCancelled))
	assert.Equal(t, 0, got.Count(model.OrderStatusPreparing))
}

func TestComputeRecentWindow(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Status: model.OrderStatusPending, CreatedAt: now.Add(-6 * 24 * time.Hour)},
		{Status: model.OrderStatusPending, CreatedAt: now.Add(-RecentWindow)},
		{Status: model.OrderStatusPending, CreatedAt: now.Add(-8 * 24 * time.Hour)},
	}

	got := Compute(orders, now)
	assert.Equal(t, 2, got.RecentOrders)
}

func TestComputeRoundsToCents(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{Status: model.OrderStatusDelivered, Total: 10.005, CreatedAt: now},
		{Status: model.OrderStatusDelivered, Total: 0.111, CreatedAt: now},
		{Status: model.OrderStatusDelivered, Total: 0.111, CreatedAt: now},
	}

	got := Compute(orders, now)
	assert.InDelta(t, 10.23, got.Revenue, 1e-9)
	assert.InDelta(t, 3.41, got.AvgOrderValue, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
}
