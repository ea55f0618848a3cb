package order

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
)

// DashboardStatsUseCase 管理后台统计
type DashboardStatsUseCase struct {
	orderRepo order.Repository
}

// NewDashboardStatsUseCase 创建统计用例
func NewDashboardStatsUseCase(orderRepo order.Repository) *DashboardStatsUseCase {
	return &DashboardStatsUseCase{orderRepo: orderRepo}
}

// DashboardStats 统计结果
type DashboardStats struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalBooksSold  int     `json:"total_books_sold"`
	TotalOrders     int     `json:"total_orders"`
	ActiveCustomers int     `json:"active_customers"`
}

// Execute 营收和销量不含已取消订单
func (uc *DashboardStatsUseCase) Execute(ctx context.Context) (*DashboardStats, error) {
	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	s := order.Summarize(orders)
	return &DashboardStats{
		TotalRevenue:    s.TotalRevenue.Round(2).InexactFloat64(),
		TotalBooksSold:  s.TotalBooksSold,
		TotalOrders:     s.TotalOrders,
		ActiveCustomers: s.ActiveCustomers,
	}, nil
}
