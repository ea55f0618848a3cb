package order

import (
	"time"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
)

// OrderInfo 订单DTO
type OrderInfo struct {
	ID              string          `json:"id"`
	OrderNo         string          `json:"order_no"`
	UserID          uint            `json:"user_id"`
	Customer        *CustomerInfo   `json:"customer,omitempty"`
	Items           []LineItemInfo  `json:"items"`
	TotalAmount     float64         `json:"total_amount"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Payment         PaymentInfo     `json:"payment"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// CustomerInfo 下单用户
type CustomerInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LineItemInfo 订单明细(下单时的快照)
type LineItemInfo struct {
	BookID   string  `json:"book_id"`
	Title    string  `json:"title"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// ShippingAddress 收货信息
type ShippingAddress struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// PaymentInfo 支付信息(脱敏)
type PaymentInfo struct {
	CardLast4 string `json:"card_last4,omitempty"`
}

func toOrderInfo(o *order.Order) OrderInfo {
	items := make([]LineItemInfo, len(o.Items))
	for i, item := range o.Items {
		items[i] = LineItemInfo{
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price.InexactFloat64(),
		}
	}

	info := OrderInfo{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		ShippingAddress: ShippingAddress{
			Name:       o.ShippingAddress.Name,
			Email:      o.ShippingAddress.Email,
			Phone:      o.ShippingAddress.Phone,
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
		},
		Payment:   PaymentInfo{CardLast4: o.Payment.CardLast4},
		Status:    o.Status.String(),
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
	if o.Customer != nil {
		info.Customer = &CustomerInfo{
			ID:    o.Customer.ID,
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
		}
	}
	return info
}

func toOrderInfos(orders []*order.Order) []OrderInfo {
	list := make([]OrderInfo, len(orders))
	for i, o := range orders {
		list[i] = toOrderInfo(o)
	}
	return list
}
