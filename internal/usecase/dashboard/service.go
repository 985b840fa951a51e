package dashboard

import (
	"context"

	domorder "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/order"
	domuser "github.com/Sandanitin/ecommerce-wedding-backend/internal/domain/user"
)

type OrderStats interface {
	Stats(ctx context.Context) (*domorder.Stats, error)
}

type ProductCounter interface {
	Count(ctx context.Context) (int64, error)
}

type CustomerCounter interface {
	CountByRole(ctx context.Context, role domuser.Role) (int64, error)
}

type Service struct {
	orders    OrderStats
	products  ProductCounter
	customers CustomerCounter
}

func NewService(orders OrderStats, products ProductCounter, customers CustomerCounter) *Service {
	return &Service{orders: orders, products: products, customers: customers}
}

type Overview struct {
	TotalOrders         int64   `json:"totalOrders"`
	TotalProducts       int64   `json:"totalProducts"`
	TotalCustomers      int64   `json:"totalCustomers"`
	TotalRevenue        float64 `json:"totalRevenue"`
	PendingOrders       int64   `json:"pendingOrders"`
	CompletedOrders     int64   `json:"completedOrders"`
	AverageOrderValue   float64 `json:"averageOrderValue"`
	CurrentMonthRevenue float64 `json:"currentMonthRevenue"`
	LastMonthRevenue    float64 `json:"lastMonthRevenue"`
	RevenueChange       float64 `json:"revenueChange"`
}

// Overview aggregates the admin dashboard numbers. Revenue counts every
// non-cancelled order; the month-over-month change is a percentage of last
// month's revenue (zero when there was none).
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	stats, err := s.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.CountByRole(ctx, domuser.RoleUser)
	if err != nil {
		return nil, err
	}

	change := 0.0
	if stats.LastMonthRevenue != 0 {
		change = (stats.CurrentMonthRevenue - stats.LastMonthRevenue) / stats.LastMonthRevenue * 100
	}

	return &Overview{
		TotalOrders:         stats.TotalOrders,
		TotalProducts:       products,
		TotalCustomers:      customers,
		TotalRevenue:        stats.TotalRevenue,
		PendingOrders:       stats.PendingOrders,
		CompletedOrders:     stats.CompletedOrders,
		AverageOrderValue:   stats.AverageOrderValue,
		CurrentMonthRevenue: stats.CurrentMonthRevenue,
		LastMonthRevenue:    stats.LastMonthRevenue,
		RevenueChange:       change,
	}, nil
}
