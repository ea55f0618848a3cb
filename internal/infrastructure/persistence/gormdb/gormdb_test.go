package gormdb

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/domain/user"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/config"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(&config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			Path:         filepath.Join(t.TempDir(), "bookstore.db"),
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func newBook(t *testing.T, title string, legacyID *int64, price string, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.CreateParams{
		LegacyID: legacyID,
		Title:    title,
		Author:   "作者",
		Genre:    "小说",
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	})
	require.NoError(t, err)
	return b
}

func int64Ptr(n int64) *int64 { return &n }

func TestBookRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(newTestDB(t))

	b1 := newBook(t, "三体", int64Ptr(1), "59.90", 5)
	require.NoError(t, repo.Create(ctx, b1))

	t.Run("按UUID和旧编号查询", func(t *testing.T) {
		got, err := repo.FindByID(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, "三体", got.Title)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("59.9")))

		got, err = repo.FindByLegacyID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, b1.ID, got.ID)

		_, err = repo.FindByLegacyID(ctx, 2)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("旧编号重复", func(t *testing.T) {
		err := repo.Create(ctx, newBook(t, "重复", int64Ptr(1), "1", 1))
		assert.ErrorIs(t, err, book.ErrLegacyIDDuplicate)
	})

	t.Run("多本无旧编号的图书", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newBook(t, "活着", nil, "30", 1)))
		require.NoError(t, repo.Create(ctx, newBook(t, "围城", nil, "25", 1)))
	})

	t.Run("列表过滤", func(t *testing.T) {
		all, err := repo.List(ctx, book.ListParams{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		found, err := repo.List(ctx, book.ListParams{Keyword: "三"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, b1.ID, found[0].ID)

		none, err := repo.List(ctx, book.ListParams{BestSellerOnly: true})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("更新", func(t *testing.T) {
		b1.Stock = 8
		b1.BestSeller = true
		require.NoError(t, repo.Update(ctx, b1))

		got, err := repo.FindByID(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got.Stock)
		assert.True(t, got.BestSeller)

		ghost := newBook(t, "不存在", nil, "1", 1)
		assert.ErrorIs(t, repo.Update(ctx, ghost), book.ErrBookNotFound)
	})

	t.Run("删除", func(t *testing.T) {
		b := newBook(t, "待删除", nil, "1", 1)
		require.NoError(t, repo.Create(ctx, b))
		require.NoError(t, repo.Delete(ctx, b.ID))
		assert.ErrorIs(t, repo.Delete(ctx, b.ID), book.ErrBookNotFound)
	})
}

func TestBookRepository_DecrStock(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBookRepository(db)

	b := newBook(t, "B1", nil, "100", 2)
	require.NoError(t, repo.Create(ctx, b))

	t.Run("库存不足", func(t *testing.T) {
		assert.ErrorIs(t, repo.DecrStock(ctx, b.ID, 3), book.ErrInsufficientStock)
		got, _ := repo.FindByID(ctx, b.ID)
		assert.Equal(t, 2, got.Stock)
	})

	t.Run("图书不存在", func(t *testing.T) {
		assert.ErrorIs(t, repo.DecrStock(ctx, "missing", 1), book.ErrBookNotFound)
	})

	t.Run("事务回滚后库存恢复", func(t *testing.T) {
		tx := NewTxManager(db)
		err := tx.Transaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.DecrStock(ctx, b.ID, 1))
			return book.ErrInsufficientStock
		})
		assert.ErrorIs(t, err, book.ErrInsufficientStock)

		got, _ := repo.FindByID(ctx, b.ID)
		assert.Equal(t, 2, got.Stock)
	})

	t.Run("并发扣减不会超卖", func(t *testing.T) {
		var wg sync.WaitGroup
		results := make(chan error, 4)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- repo.DecrStock(ctx, b.ID, 1)
			}()
		}
		wg.Wait()
		close(results)

		success := 0
		for err := range results {
			if err == nil {
				success++
			} else {
				assert.ErrorIs(t, err, book.ErrInsufficientStock)
			}
		}
		assert.Equal(t, 2, success)

		got, _ := repo.FindByID(ctx, b.ID)
		assert.Equal(t, 0, got.Stock)
	})
}

func createUser(t *testing.T, repo user.Repository, name, email string) *user.User {
	t.Helper()
	u := user.NewUser(name, email, "hashed", "13800000000")
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func newOrder(t *testing.T, userID uint, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID,
		[]order.LineItem{{BookID: "b1", Title: "三体", Quantity: 2, Price: decimal.NewFromInt(100)}},
		decimal.NewFromInt(200),
		order.ShippingAddress{Name: "张三", Email: "z@example.com", Phone: "1", Address: "路1号", City: "北京", PostalCode: "100000"},
		order.Payment{CardLast4: "4242"},
	)
	require.NoError(t, err)
	o.CreatedAt = createdAt
	return o
}

func TestOrderRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewOrderRepository(db)

	alice := createUser(t, users, "Alice", "alice@example.com")
	bob := createUser(t, users, "Bob", "bob@example.com")

	base := time.Now().Add(-time.Hour)
	first := newOrder(t, alice.ID, base)
	second := newOrder(t, bob.ID, base.Add(time.Minute))
	third := newOrder(t, alice.ID, base.Add(2*time.Minute))
	for _, o := range []*order.Order{first, second, third} {
		require.NoError(t, repo.Create(ctx, o))
	}

	t.Run("查询订单包含明细快照", func(t *testing.T) {
		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "三体", got.Items[0].Title)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "北京", got.ShippingAddress.City)
		assert.Equal(t, "4242", got.Payment.CardLast4)
		assert.Equal(t, order.StatusPending, got.Status)

		_, err = repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})

	t.Run("只返回自己的订单", func(t *testing.T) {
		mine, err := repo.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, third.ID, mine[0].ID)
		assert.Equal(t, first.ID, mine[1].ID)
	})

	t.Run("全部订单倒序并解析下单用户", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{third.ID, second.ID, first.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
		require.NotNil(t, all[1].Customer)
		assert.Equal(t, "Bob", all[1].Customer.Name)
		assert.Equal(t, "bob@example.com", all[1].Customer.Email)

		again, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, all, again)
	})

	t.Run("更新状态", func(t *testing.T) {
		got, err := repo.UpdateStatus(ctx, second.ID, order.StatusShipped)
		require.NoError(t, err)
		assert.Equal(t, order.StatusShipped, got.Status)

		_, err = repo.UpdateStatus(ctx, "missing", order.StatusShipped)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := createUser(t, repo, "张三", "zs@example.com")
	assert.NotZero(t, u.ID)

	t.Run("邮箱重复", func(t *testing.T) {
		err := repo.Create(ctx, user.NewUser("李四", "zs@example.com", "hashed", ""))
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("提升为管理员", func(t *testing.T) {
		u.PromoteToAdmin()
		require.NoError(t, repo.Update(ctx, u))

		got, err := repo.FindByEmail(ctx, "zs@example.com")
		require.NoError(t, err)
		assert.True(t, got.IsAdmin())
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
