package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		Name:       "张三",
		Email:      "zhangsan@example.com",
		Phone:      "13800000000",
		Address:    "中关村大街1号",
		City:       "北京",
		PostalCode: "100080",
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("合法状态", func(t *testing.T) {
		for _, in := range []string{"Pending", "processing", " SHIPPED ", "Delivered", "cancelled"} {
			s, err := ParseStatus(in)
			require.NoError(t, err, in)
			assert.True(t, s.Valid())
		}
	})

	t.Run("非法状态", func(t *testing.T) {
		_, err := ParseStatus("Refunded")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestNewOrder(t *testing.T) {
	items := []LineItem{
		{BookID: "b1", Title: "三体", Quantity: 2, Price: decimal.NewFromInt(100)},
		{BookID: "b2", Title: "活着", Quantity: 1, Price: decimal.RequireFromString("29.9")},
	}

	t.Run("默认状态为Pending", func(t *testing.T) {
		o, err := NewOrder(1, items, decimal.RequireFromString("229.9"), validAddress(), Payment{CardLast4: "4242"})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.NotEmpty(t, o.ID)
		assert.Regexp(t, `^ORD\d+$`, o.OrderNo)
		assert.True(t, o.CalculateTotal().Equal(decimal.RequireFromString("229.9")))
		assert.Equal(t, 3, o.TotalQuantity())
	})

	t.Run("明细为空", func(t *testing.T) {
		_, err := NewOrder(1, nil, decimal.Zero, validAddress(), Payment{})
		assert.ErrorIs(t, err, ErrInvalidOrderItems)
	})

	t.Run("数量非法", func(t *testing.T) {
		_, err := NewOrder(1, []LineItem{{BookID: "b1", Quantity: 0}}, decimal.Zero, validAddress(), Payment{})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("收货信息缺失", func(t *testing.T) {
		addr := validAddress()
		addr.PostalCode = "  "
		_, err := NewOrder(1, items, decimal.Zero, addr, Payment{})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
		assert.Contains(t, err.Error(), "postalCode")
	})
}

func TestOrder_SetStatus(t *testing.T) {
	o := &Order{Status: StatusDelivered}

	t.Run("允许任意方向流转", func(t *testing.T) {
		require.NoError(t, o.SetStatus(StatusPending))
		assert.Equal(t, StatusPending, o.Status)
	})

	t.Run("拒绝枚举外的状态", func(t *testing.T) {
		assert.ErrorIs(t, o.SetStatus(Status("Lost")), ErrInvalidStatus)
		assert.Equal(t, StatusPending, o.Status)
	})
}

func TestMaskCardNumber(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{"带空格", "4242 4242 4242 1234", "1234", nil},
		{"带短横线", "5555-5555-5555-4444", "4444", nil},
		{"前端已脱敏", "**** **** **** 4242", "4242", nil},
		{"空卡号", "", "", nil},
		{"位数不足", "123", "", ErrInvalidCardNumber},
		{"包含字母", "4242abcd", "", ErrInvalidCardNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MaskCardNumber(tc.in)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSummarize(t *testing.T) {
	orders := []*Order{
		{UserID: 1, Status: StatusDelivered, TotalAmount: decimal.NewFromInt(200),
			Items: []LineItem{{Quantity: 2}}},
		{UserID: 1, Status: StatusPending, TotalAmount: decimal.RequireFromString("30.5"),
			Items: []LineItem{{Quantity: 1}}},
		{UserID: 2, Status: StatusCancelled, TotalAmount: decimal.NewFromInt(999),
			Items: []LineItem{{Quantity: 9}}},
	}

	stats := Summarize(orders)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("230.5")))
	assert.Equal(t, 3, stats.TotalBooksSold)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.ActiveCustomers)

	t.Run("空列表", func(t *testing.T) {
		empty := Summarize(nil)
		assert.True(t, empty.TotalRevenue.IsZero())
		assert.Equal(t, 0, empty.TotalOrders)
	})
}
