package dto

import (
	"time"

	"github.com/polkiloo/rype/internal/domain/model"
	"github.com/polkiloo/rype/internal/domain/stats"
	"github.com/polkiloo/rype/internal/tracking"
)

// StatsResponse is the admin dashboard payload.
type StatsResponse struct {
	TotalOrders          int            `json:"totalOrders"`
	PendingOrders        int            `json:"pendingOrders"`
	PreparingOrders      int            `json:"preparingOrders"`
	QualityCheckOrders   int            `json:"qualityCheckOrders"`
	OutForDeliveryOrders int            `json:"outForDeliveryOrders"`
	DeliveredOrders      int            `json:"deliveredOrders"`
	CancelledOrders      int            `json:"cancelledOrders"`
	ByStatus             map[string]int `json:"byStatus"`
	Revenue              float64        `json:"revenue"`
	TodayRevenue         float64        `json:"todayRevenue"`
	AvgOrderValue        float64        `json:"avgOrderValue"`
	TotalCustomers       int64          `json:"totalCustomers"`
	TotalProducts        int64          `json:"totalProducts"`
	RecentOrders         int            `json:"recentOrders"`
}

func NewStatsResponse(s *stats.Stats) StatsResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}
	return StatsResponse{
		TotalOrders:          s.TotalOrders,
		PendingOrders:        s.Count(model.OrderStatusPending),
		PreparingOrders:      s.Count(model.OrderStatusPreparing),
		QualityCheckOrders:   s.Count(model.OrderStatusQualityCheck),
		OutForDeliveryOrders: s.Count(model.OrderStatusOutForDelivery),
		DeliveredOrders:      s.Count(model.OrderStatusDelivered),
		CancelledOrders:      s.Count(model.OrderStatusCancelled),
		ByStatus:             byStatus,
		Revenue:              s.Revenue,
		TodayRevenue:         s.TodayRevenue,
		AvgOrderValue:        s.AvgOrderValue,
		TotalCustomers:       s.TotalCustomers,
		TotalProducts:        s.TotalProducts,
		RecentOrders:         s.RecentOrders,
	}
}

// TrackingResponse is the server-side projection of a tracking session.
type TrackingResponse struct {
	Order          tracking.OrderRef `json:"order"`
	Stage          int               `json:"stage"`
	StageName      string            `json:"stageName"`
	ElapsedMinutes int               `json:"elapsedMinutes"`
	Delivered      bool              `json:"delivered"`
	Courier        *tracking.Courier `json:"courier,omitempty"`
}

func NewTrackingResponse(s tracking.Session) TrackingResponse {
	return TrackingResponse{
		Order:          s.Order,
		Stage:          int(s.Stage),
		StageName:      s.StageName(),
		ElapsedMinutes: s.ElapsedMinutes,
		Delivered:      s.Delivered(),
		Courier:        s.Courier,
	}
}

// HealthResponse reports service and storage state.
type HealthResponse struct {
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	Timestamp     time.Time `json:"timestamp"`
	UsersCount    int64     `json:"usersCount"`
	OrdersCount   int64     `json:"ordersCount"`
	ProductsCount int64     `json:"productsCount"`
	Database      string    `json:"database"`
}
