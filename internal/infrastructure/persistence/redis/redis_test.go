package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore_Blacklist(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	store := NewSessionStore(client)

	t.Run("加入黑名单", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Minute))

		revoked, err := store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = store.IsInBlacklist(ctx, "token-b")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("过期后自动移除", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)
		revoked, err := store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("已过期的Token不写入", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "token-c", 0))
		assert.False(t, mr.Exists("blacklist:token-c"))
	})
}

func TestSessionStore_Session(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	store := NewSessionStore(client)

	require.NoError(t, store.SaveSession(ctx, 7, map[string]interface{}{"email": "a@example.com", "role": "user"}, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("session:7"))

	got, err := store.GetSession(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got["email"])

	require.NoError(t, store.DeleteSession(ctx, 7))
	_, err = store.GetSession(ctx, 7)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestBookListCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	cache := NewBookListCache(client, time.Minute)

	t.Run("未命中", func(t *testing.T) {
		books, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, books)
	})

	t.Run("写入后命中", func(t *testing.T) {
		legacyID := int64(3)
		require.NoError(t, cache.Set(ctx, []*book.Book{{
			ID:       "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
			LegacyID: &legacyID,
			Title:    "三体",
			Price:    decimal.RequireFromString("59.9"),
			Stock:    4,
		}}))

		books, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, books, 1)
		assert.Equal(t, "三体", books[0].Title)
		assert.Equal(t, int64(3), *books[0].LegacyID)
		assert.True(t, books[0].Price.Equal(decimal.RequireFromString("59.9")))
	})

	t.Run("失效", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx))
		_, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("损坏的缓存当作未命中", func(t *testing.T) {
		require.NoError(t, mr.Set(bookListKey, "not-json"))
		_, ok, err := cache.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Redis不可用", func(t *testing.T) {
		mr.Close()
		_, _, err := cache.Get(ctx)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeRedisError))
	})
}
