package book

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo 内存仓储,只用于领域层测试
type memRepo struct {
	mu    sync.Mutex
	books map[string]*Book
	err   error
}

func newMemRepo(books ...*Book) *memRepo {
	r := &memRepo{books: make(map[string]*Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *memRepo) Create(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = b
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) FindByLegacyID(_ context.Context, legacyID int64) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.LegacyID != nil && *b.LegacyID == legacyID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrBookNotFound
}

func (r *memRepo) List(_ context.Context, _ ListParams) ([]*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *memRepo) DecrStock(_ context.Context, id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return ErrBookNotFound
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	return nil
}

func legacy(n int64) *int64 { return &n }

func mustBook(t *testing.T, p CreateParams) *Book {
	t.Helper()
	b, err := NewBook(p)
	require.NoError(t, err)
	return b
}

func TestNewBook(t *testing.T) {
	t.Run("创建成功", func(t *testing.T) {
		b, err := NewBook(CreateParams{
			Title:  " 三体 ",
			Author: "刘慈欣",
			Price:  decimal.RequireFromString("59.90"),
			Stock:  10,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, "三体", b.Title)
		assert.False(t, b.CreatedAt.IsZero())
	})

	cases := []struct {
		name   string
		params CreateParams
		want   error
	}{
		{"书名为空", CreateParams{Author: "a", Price: decimal.NewFromInt(1)}, ErrTitleRequired},
		{"作者为空", CreateParams{Title: "t", Price: decimal.NewFromInt(1)}, ErrAuthorRequired},
		{"价格为负", CreateParams{Title: "t", Author: "a", Price: decimal.NewFromInt(-1)}, ErrInvalidPrice},
		{"库存为负", CreateParams{Title: "t", Author: "a", Stock: -1}, ErrInvalidStock},
		{"旧编号非正数", CreateParams{Title: "t", Author: "a", LegacyID: legacy(0)}, ErrInvalidLegacyID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook(tc.params)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBook_Apply(t *testing.T) {
	b := mustBook(t, CreateParams{Title: "t", Author: "a", Price: decimal.NewFromInt(10), Stock: 3})

	t.Run("部分更新", func(t *testing.T) {
		title := "新书名"
		price := decimal.RequireFromString("12.50")
		require.NoError(t, b.Apply(Patch{Title: &title, Price: &price}))
		assert.Equal(t, "新书名", b.Title)
		assert.True(t, b.Price.Equal(price))
		assert.Equal(t, 3, b.Stock)
	})

	t.Run("校验失败时不修改实体", func(t *testing.T) {
		stock := -5
		err := b.Apply(Patch{Stock: &stock})
		assert.ErrorIs(t, err, ErrInvalidStock)
		assert.Equal(t, 3, b.Stock)
	})
}

func TestResolve(t *testing.T) {
	withLegacy := mustBook(t, CreateParams{Title: "旧书", Author: "a", LegacyID: legacy(42)})
	plain := mustBook(t, CreateParams{Title: "新书", Author: "b"})
	repo := newMemRepo(withLegacy, plain)
	ctx := context.Background()

	t.Run("按UUID查找", func(t *testing.T) {
		b, err := Resolve(ctx, repo, plain.ID)
		require.NoError(t, err)
		assert.Equal(t, "新书", b.Title)
	})

	t.Run("按旧编号查找", func(t *testing.T) {
		b, err := Resolve(ctx, repo, "42")
		require.NoError(t, err)
		assert.Equal(t, withLegacy.ID, b.ID)
	})

	t.Run("未知编号", func(t *testing.T) {
		for _, ref := range []string{"", "43", "abc", "-1", "00000000-0000-0000-0000-000000000000"} {
			_, err := Resolve(ctx, repo, ref)
			assert.ErrorIs(t, err, ErrBookNotFound, ref)
		}
	})

	t.Run("存储错误直接返回", func(t *testing.T) {
		boom := errors.New("connection refused")
		failing := newMemRepo()
		failing.err = boom
		_, err := Resolve(ctx, failing, plain.ID)
		assert.ErrorIs(t, err, boom)
	})
}

func TestService(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)

	created, err := svc.Create(ctx, CreateParams{
		LegacyID: legacy(7),
		Title:    "活着",
		Author:   "余华",
		Price:    decimal.NewFromInt(30),
		Stock:    5,
	})
	require.NoError(t, err)

	t.Run("旧编号重复", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateParams{LegacyID: legacy(7), Title: "x", Author: "y"})
		assert.ErrorIs(t, err, ErrLegacyIDDuplicate)
	})

	t.Run("按旧编号更新", func(t *testing.T) {
		stock := 9
		b, err := svc.Update(ctx, "7", Patch{Stock: &stock})
		require.NoError(t, err)
		assert.Equal(t, created.ID, b.ID)
		assert.Equal(t, 9, repo.books[created.ID].Stock)
	})

	t.Run("更新为自身旧编号不算重复", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, Patch{LegacyID: legacy(7)})
		assert.NoError(t, err)
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		_, err := svc.Update(ctx, "999", Patch{})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("删除返回被删除的图书", func(t *testing.T) {
		b, err := svc.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "活着", b.Title)

		_, err = svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
