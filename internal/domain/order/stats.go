package order

import (
	"github.com/shopspring/decimal"
)

// Stats 管理后台统计
type Stats struct {
	TotalRevenue    decimal.Decimal
	TotalBooksSold  int
	TotalOrders     int
	ActiveCustomers int
}

// Summarize 汇总订单统计
// 营收和销量不计已取消订单;订单数和客户数统计全部订单
func Summarize(orders []*Order) Stats {
	stats := Stats{TotalRevenue: decimal.Zero, TotalOrders: len(orders)}
	customers := make(map[uint]struct{}, len(orders))

	for _, o := range orders {
		customers[o.UserID] = struct{}{}
		if o.Status == StatusCancelled {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		stats.TotalBooksSold += o.TotalQuantity()
	}

	stats.ActiveCustomers = len(customers)
	return stats
}
