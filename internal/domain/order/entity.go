package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order 订单实体(聚合根)
// 1. LineItem是子实体,只能通过Order访问
// 2. TotalAmount在下单时由服务端计算,之后不再重算
// 3. 只有状态可以修改,订单不删除
type Order struct {
	ID              string
	OrderNo         string
	UserID          uint
	Customer        *Customer // 管理员列表中解析出的下单用户,其余场景可能为nil
	Items           []LineItem
	TotalAmount     decimal.Decimal
	ShippingAddress ShippingAddress
	Payment         Payment
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineItem 订单明细
// Title和Price是下单时的快照,后续改价或改名不影响历史订单
type LineItem struct {
	BookID   string
	Title    string
	Quantity int
	Price    decimal.Decimal
}

// Subtotal 明细小计
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Customer 下单用户的展示信息
type Customer struct {
	ID    uint
	Name  string
	Email string
}

// ShippingAddress 收货信息,全部字段必填
type ShippingAddress struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// Validate 校验收货信息完整性
func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"postalCode", a.PostalCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return ShippingFieldRequired(f.name)
		}
	}
	return nil
}

// Payment 支付信息,只保留卡号后四位
type Payment struct {
	CardLast4 string
}

// NewOrder 创建新订单(工厂方法)
// 初始状态为Pending,总金额由调用方按权威价格算好传入
func NewOrder(userID uint, items []LineItem, total decimal.Decimal, addr ShippingAddress, payment Payment) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItems
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Order{
		ID:              uuid.NewString(),
		OrderNo:         GenerateOrderNo(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: addr,
		Payment:         payment,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// CalculateTotal 按明细快照计算总金额
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalQuantity 订单内图书总册数
func (o *Order) TotalQuantity() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// SetStatus 修改状态
// 不限制流转方向,任意合法状态之间都可以切换
func (o *Order) SetStatus(s Status) error {
	if !s.Valid() {
		return ErrInvalidStatus
	}
	o.Status = s
	o.UpdatedAt = time.Now()
	return nil
}

// OwnedBy 是否属于指定用户
func (o *Order) OwnedBy(userID uint) bool {
	return o.UserID == userID
}

// MaskCardNumber 提取卡号后四位
// 允许空格和短横线分隔,前端已脱敏的*位跳过,空卡号返回空串
func MaskCardNumber(cardNumber string) (string, error) {
	digits := make([]byte, 0, len(cardNumber))
	for i := 0; i < len(cardNumber); i++ {
		c := cardNumber[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == ' ' || c == '-' || c == '*':
		default:
			return "", ErrInvalidCardNumber
		}
	}
	if len(digits) == 0 {
		return "", nil
	}
	if len(digits) < 4 {
		return "", ErrInvalidCardNumber
	}
	return string(digits[len(digits)-4:]), nil
}
