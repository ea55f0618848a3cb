package order

import (
	"time"
)

// 订单事件路由键
const (
	RoutingKeyPlaced        = "order.placed"
	RoutingKeyStatusUpdated = "order.status_updated"
)

// PlacedEvent 下单成功事件
type PlacedEvent struct {
	OrderID     string       `json:"order_id"`
	OrderNo     string       `json:"order_no"`
	UserID      uint         `json:"user_id"`
	TotalAmount string       `json:"total_amount"`
	Items       []PlacedItem `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
}

// PlacedItem 事件中的明细
type PlacedItem struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// NewPlacedEvent 由订单生成下单事件
func NewPlacedEvent(o *Order) PlacedEvent {
	items := make([]PlacedItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = PlacedItem{BookID: item.BookID, Title: item.Title, Quantity: item.Quantity}
	}
	return PlacedEvent{
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}

// StatusUpdatedEvent 订单状态变更事件
type StatusUpdatedEvent struct {
	OrderID   string    `json:"order_id"`
	OrderNo   string    `json:"order_no"`
	UserID    uint      `json:"user_id"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStatusUpdatedEvent 由订单生成状态变更事件
func NewStatusUpdatedEvent(o *Order) StatusUpdatedEvent {
	return StatusUpdatedEvent{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Status:    o.Status,
		UpdatedAt: o.UpdatedAt,
	}
}
