package dto

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// PlaceOrderRequest HTTP下单请求
// 字段命名沿用前端购物车提交的格式(驼峰)
type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount     *decimal.Decimal   `json:"totalAmount" binding:"required" swaggertype:"number" example:"200"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" binding:"required"`
	PaymentDetails  PaymentDetails     `json:"paymentDetails"`
}

// OrderItemRequest 下单明细
type OrderItemRequest struct {
	BookID   BookRef `json:"bookId" binding:"required" swaggertype:"string" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Quantity int     `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// ShippingAddress 收货信息
type ShippingAddress struct {
	Name       string `json:"name" binding:"required,max=50" example:"张三"`
	Email      string `json:"email" binding:"required,email" example:"zhangsan@example.com"`
	Phone      string `json:"phone" binding:"required,max=20" example:"13800000000"`
	Address    string `json:"address" binding:"required,max=200" example:"中关村大街1号"`
	City       string `json:"city" binding:"required,max=50" example:"北京"`
	PostalCode string `json:"postalCode" binding:"required,max=20" example:"100080"`
}

// PaymentDetails 支付信息,服务端只保存卡号后四位
type PaymentDetails struct {
	CardNumber string `json:"cardNumber" binding:"max=30" example:"4242 4242 4242 4242"`
}

// UpdateOrderStatusRequest 修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Shipped"`
}

// BookRef 图书编号
// 新数据是UUID字符串,历史数据是数字编号,两种JSON写法都接受
type BookRef string

// UnmarshalJSON 接受字符串或整数
func (r *BookRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = BookRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("bookId必须是字符串或整数: %s", data)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("bookId必须是字符串或整数: %s", data)
	}
	*r = BookRef(n.String())
	return nil
}

// String 返回编号原文
func (r BookRef) String() string {
	return string(r)
}
