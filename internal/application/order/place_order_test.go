package order

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/online-bookstore/internal/application/book"
	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/gormdb"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events map[string][]interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.events == nil {
		p.events = make(map[string][]interface{})
	}
	p.events[routingKey] = append(p.events[routingKey], event)
	return nil
}

func (p *recordingPublisher) count(routingKey string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events[routingKey])
}

type fixture struct {
	books     book.Repository
	orders    order.Repository
	users     user.Repository
	publisher *recordingPublisher
	place     *PlaceOrderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gormdb.NewDB(&config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        filepath.Join(t.TempDir(), "bookstore.db"),
			AutoMigrate: true,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gormdb.Close(db) })

	f := &fixture{
		books:     gormdb.NewBookRepository(db),
		orders:    gormdb.NewOrderRepository(db),
		users:     gormdb.NewUserRepository(db),
		publisher: &recordingPublisher{},
	}
	f.place = NewPlaceOrderUseCase(f.orders, f.books, gormdb.NewTxManager(db), appbook.NoCache{}, f.publisher, zap.NewNop())
	return f
}

func (f *fixture) createBook(t *testing.T, title string, legacyID int64, price string, stock int) *book.Book {
	t.Helper()
	p := book.CreateParams{
		Title:  title,
		Author: "作者",
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
	}
	if legacyID > 0 {
		p.LegacyID = &legacyID
	}
	b, err := book.NewBook(p)
	require.NoError(t, err)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f *fixture) createUser(t *testing.T, name, email string) *user.User {
	t.Helper()
	u := user.NewUser(name, email, "hashed", "13800000000")
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	b, err := f.books.FindByID(context.Background(), id)
	require.NoError(t, err)
	return b.Stock
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	orders, err := f.orders.ListAll(context.Background())
	require.NoError(t, err)
	return len(orders)
}

func shipping() order.ShippingAddress {
	return order.ShippingAddress{
		Name:       "张三",
		Email:      "zhangsan@example.com",
		Phone:      "13800000000",
		Address:    "中关村大街1号",
		City:       "北京",
		PostalCode: "100080",
	}
}

func placeRequest(userID uint, total string, items ...PlaceOrderItem) PlaceOrderRequest {
	return PlaceOrderRequest{
		UserID:          userID,
		Items:           items,
		ClientTotal:     decimal.RequireFromString(total),
		ShippingAddress: shipping(),
		CardNumber:      "4242 4242 4242 4242",
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("下单成功扣减库存", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 2)

		resp, err := f.place.Execute(ctx, placeRequest(u.ID, "200", PlaceOrderItem{BookID: b1.ID, Quantity: 2}))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.OrderID)
		assert.Equal(t, 200.0, resp.TotalAmount)
		assert.Equal(t, "Pending", resp.Status)
		assert.Equal(t, 0, f.stock(t, b1.ID))

		o, err := f.orders.FindByID(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, o.UserID)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "4242", o.Payment.CardLast4)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "B1", o.Items[0].Title)

		assert.Equal(t, 1, f.publisher.count(order.RoutingKeyPlaced))
	})

	t.Run("使用旧编号下单", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b := f.createBook(t, "旧书", 7, "19.99", 5)

		resp, err := f.place.Execute(ctx, placeRequest(u.ID, "39.98", PlaceOrderItem{BookID: "7", Quantity: 2}))
		require.NoError(t, err)
		assert.Equal(t, 3, f.stock(t, b.ID))

		o, err := f.orders.FindByID(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, o.Items[0].BookID)
	})

	t.Run("修改图书不影响订单明细快照", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b := f.createBook(t, "B1", 0, "100", 2)

		resp, err := f.place.Execute(ctx, placeRequest(u.ID, "100", PlaceOrderItem{BookID: b.ID, Quantity: 1}))
		require.NoError(t, err)

		title, price := "Renamed", decimal.NewFromInt(999)
		_, err = book.NewService(f.books).Update(ctx, b.ID, book.Patch{Title: &title, Price: &price})
		require.NoError(t, err)

		o, err := f.orders.FindByID(ctx, resp.OrderID)
		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, "B1", o.Items[0].Title)
		assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(100)))
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("已脱敏卡号只保留后四位", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b := f.createBook(t, "B1", 0, "100", 2)

		req := placeRequest(u.ID, "100", PlaceOrderItem{BookID: b.ID, Quantity: 1})
		req.CardNumber = "**** **** **** 4242"
		resp, err := f.place.Execute(ctx, req)
		require.NoError(t, err)

		o, err := f.orders.FindByID(ctx, resp.OrderID)
		require.NoError(t, err)
		assert.Equal(t, "4242", o.Payment.CardLast4)
	})

	t.Run("金额误差在0.01以内", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b := f.createBook(t, "B1", 0, "100", 2)

		resp, err := f.place.Execute(ctx, placeRequest(u.ID, "100.01", PlaceOrderItem{BookID: b.ID, Quantity: 1}))
		require.NoError(t, err)
		assert.Equal(t, 100.0, resp.TotalAmount)
	})

	t.Run("库存不足", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 2)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "300", PlaceOrderItem{BookID: b1.ID, Quantity: 3}))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
		assert.Contains(t, err.Error(), "B1")
		assert.Equal(t, 2, f.stock(t, b1.ID))
		assert.Equal(t, 0, f.orderCount(t))
	})

	t.Run("金额不一致", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 2)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "150", PlaceOrderItem{BookID: b1.ID, Quantity: 2}))
		assert.ErrorIs(t, err, order.ErrPriceMismatch)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
		assert.Equal(t, 2, f.stock(t, b1.ID))
		assert.Equal(t, 0, f.orderCount(t))
	})

	t.Run("图书不存在时不扣减其他图书", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 2)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "100",
			PlaceOrderItem{BookID: b1.ID, Quantity: 1},
			PlaceOrderItem{BookID: "999", Quantity: 1},
		))
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOrderBookNotFound))
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
		assert.Equal(t, 2, f.stock(t, b1.ID))
		assert.Equal(t, 0, f.orderCount(t))
		assert.Equal(t, 0, f.publisher.count(order.RoutingKeyPlaced))
	})

	t.Run("图书不存在优先于库存检查", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 0)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "100",
			PlaceOrderItem{BookID: b1.ID, Quantity: 1},
			PlaceOrderItem{BookID: "missing", Quantity: 1},
		))
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeOrderBookNotFound))
	})

	t.Run("库存检查优先于金额校验", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 1)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "1", PlaceOrderItem{BookID: b1.ID, Quantity: 2}))
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
	})

	t.Run("多本图书任一库存不足整体失败", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 5)
		b2 := f.createBook(t, "B2", 0, "50", 1)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "300",
			PlaceOrderItem{BookID: b1.ID, Quantity: 2},
			PlaceOrderItem{BookID: b2.ID, Quantity: 2},
		))
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock))
		assert.Contains(t, err.Error(), "B2")
		assert.Equal(t, 5, f.stock(t, b1.ID))
		assert.Equal(t, 1, f.stock(t, b2.ID))
	})

	t.Run("请求参数校验", func(t *testing.T) {
		f := newFixture(t)
		u := f.createUser(t, "张三", "zhangsan@example.com")
		b1 := f.createBook(t, "B1", 0, "100", 2)

		_, err := f.place.Execute(ctx, placeRequest(u.ID, "0"))
		assert.ErrorIs(t, err, order.ErrInvalidOrderItems)

		_, err = f.place.Execute(ctx, placeRequest(u.ID, "0", PlaceOrderItem{BookID: b1.ID, Quantity: 0}))
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)

		req := placeRequest(u.ID, "100", PlaceOrderItem{BookID: b1.ID, Quantity: 1})
		req.ShippingAddress.City = ""
		_, err = f.place.Execute(ctx, req)
		require.Error(t, err)
		assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())
		assert.Contains(t, err.Error(), "city")

		req = placeRequest(u.ID, "100", PlaceOrderItem{BookID: b1.ID, Quantity: 1})
		req.CardNumber = "12"
		_, err = f.place.Execute(ctx, req)
		assert.ErrorIs(t, err, order.ErrInvalidCardNumber)

		assert.Equal(t, 2, f.stock(t, b1.ID))
	})
}

func TestPlaceOrder_Concurrent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")
	b1 := f.createBook(t, "B1", 0, "100", 2)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, uid := range []uint{alice.ID, bob.ID} {
		wg.Add(1)
		go func(uid uint) {
			defer wg.Done()
			_, err := f.place.Execute(ctx, placeRequest(uid, "200", PlaceOrderItem{BookID: b1.ID, Quantity: 2}))
			results <- err
		}(uid)
	}
	wg.Wait()
	close(results)

	success := 0
	for err := range results {
		if err == nil {
			success++
			continue
		}
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, success)
	assert.Equal(t, 0, f.stock(t, b1.ID))
	assert.Equal(t, 1, f.orderCount(t))
}

func TestOrderManagement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.createUser(t, "Alice", "alice@example.com")
	bob := f.createUser(t, "Bob", "bob@example.com")
	b1 := f.createBook(t, "B1", 0, "100", 10)

	first, err := f.place.Execute(ctx, placeRequest(alice.ID, "100", PlaceOrderItem{BookID: b1.ID, Quantity: 1}))
	require.NoError(t, err)
	second, err := f.place.Execute(ctx, placeRequest(bob.ID, "300", PlaceOrderItem{BookID: b1.ID, Quantity: 3}))
	require.NoError(t, err)

	t.Run("我的订单只包含自己的", func(t *testing.T) {
		uc := NewListMyOrdersUseCase(f.orders)
		list, err := uc.Execute(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, first.OrderID, list[0].ID)

		again, err := uc.Execute(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, list, again)
	})

	t.Run("全部订单包含下单用户且读取幂等", func(t *testing.T) {
		uc := NewListAllOrdersUseCase(f.orders)
		list, err := uc.Execute(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, o := range list {
			require.NotNil(t, o.Customer)
			assert.NotEmpty(t, o.Customer.Email)
		}

		again, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, list, again)
	})

	t.Run("订单详情权限", func(t *testing.T) {
		uc := NewGetOrderUseCase(f.orders)

		info, err := uc.Execute(ctx, first.OrderID, alice.ID, jwt.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, first.OrderNo, info.OrderNo)

		_, err = uc.Execute(ctx, first.OrderID, bob.ID, jwt.RoleUser)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)

		_, err = uc.Execute(ctx, first.OrderID, bob.ID, jwt.RoleAdmin)
		assert.NoError(t, err)

		_, err = uc.Execute(ctx, "missing", alice.ID, jwt.RoleAdmin)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("修改状态不限制流转方向", func(t *testing.T) {
		uc := NewUpdateOrderStatusUseCase(f.orders, f.publisher, zap.NewNop())

		info, err := uc.Execute(ctx, second.OrderID, "Delivered")
		require.NoError(t, err)
		assert.Equal(t, "Delivered", info.Status)

		info, err = uc.Execute(ctx, second.OrderID, "Pending")
		require.NoError(t, err)
		assert.Equal(t, "Pending", info.Status)

		assert.Equal(t, 2, f.publisher.count(order.RoutingKeyStatusUpdated))
	})

	t.Run("修改状态失败", func(t *testing.T) {
		uc := NewUpdateOrderStatusUseCase(f.orders, f.publisher, zap.NewNop())

		_, err := uc.Execute(ctx, second.OrderID, "Lost")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)

		_, err = uc.Execute(ctx, "missing", "Shipped")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("统计不含已取消订单", func(t *testing.T) {
		_, err := NewUpdateOrderStatusUseCase(f.orders, f.publisher, zap.NewNop()).Execute(ctx, first.OrderID, "Cancelled")
		require.NoError(t, err)

		stats, err := NewDashboardStatsUseCase(f.orders).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, 300.0, stats.TotalRevenue)
		assert.Equal(t, 3, stats.TotalBooksSold)
		assert.Equal(t, 2, stats.TotalOrders)
		assert.Equal(t, 2, stats.ActiveCustomers)
	})
}
