// Package stats aggregates order data for the admin dashboard.
package stats

import (
	"math"
	"time"

	"github.com/polkiloo/rype/internal/domain/model"
)

// RecentWindow bounds the "recent orders" counter.
const RecentWindow = 7 * 24 * time.Hour

// Stats is a point-in-time summary of the order book.
type Stats struct {
	TotalOrders    int
	ByStatus       map[model.OrderStatus]int
	RecentOrders   int
	Revenue        float64
	TodayRevenue   float64
	AvgOrderValue  float64
	TotalCustomers int64
	TotalProducts  int64
}

// Count returns the number of orders currently in status.
func (s Stats) Count(status model.OrderStatus) int {
	return s.ByStatus[status]
}

// Compute derives order statistics relative to now. Revenue figures only
// include delivered orders; "today" starts at local midnight of now.
func Compute(orders []model.Order, now time.Time) Stats {
	result := Stats{
		TotalOrders: len(orders),
		ByStatus:    make(map[model.OrderStatus]int, len(model.OrderStatuses)),
	}
	for _, status := range model.OrderStatuses {
		result.ByStatus[status] = 0
	}

	recentSince := now.Add(-RecentWindow)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var delivered int
	for _, o := range orders {
		result.ByStatus[o.Status]++
		if !o.CreatedAt.Before(recentSince) {
			result.RecentOrders++
		}
		if o.Status != model.OrderStatusDelivered {
			continue
		}
		delivered++
		result.Revenue += o.Total
		if !o.CreatedAt.Before(midnight) {
			result.TodayRevenue += o.Total
		}
	}

	if delivered > 0 {
		result.AvgOrderValue = result.Revenue / float64(delivered)
	}

	result.Revenue = Round2(result.Revenue)
	result.TodayRevenue = Round2(result.TodayRevenue)
	result.AvgOrderValue = Round2(result.AvgOrderValue)
	return result
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
