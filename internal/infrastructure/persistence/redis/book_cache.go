package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

const bookListKey = "books:list:all"

// BookListCache 全量图书列表缓存
// 只缓存无过滤条件的列表;图书增删改和下单扣库存后失效
type BookListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookListCache 创建图书列表缓存
func NewBookListCache(client *redis.Client, ttl time.Duration) *BookListCache {
	return &BookListCache{client: client, ttl: ttl}
}

var _ book.ListCache = (*BookListCache)(nil)

// Get 读取缓存,未命中返回(nil, false, nil)
func (c *BookListCache) Get(ctx context.Context) ([]*book.Book, bool, error) {
	data, err := c.client.Get(ctx, bookListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.BookCacheRequestsTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		metrics.BookCacheRequestsTotal.WithLabelValues("error").Inc()
		return nil, false, apperrors.New(apperrors.ErrCodeRedisError, "读取图书缓存失败").WithCause(err)
	}

	var books []*book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		// 格式不兼容的旧缓存直接当作未命中
		metrics.BookCacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}

	metrics.BookCacheRequestsTotal.WithLabelValues("hit").Inc()
	return books, true, nil
}

// Set 写入缓存
func (c *BookListCache) Set(ctx context.Context, books []*book.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}
	if err := c.client.Set(ctx, bookListKey, data, c.ttl).Err(); err != nil {
		return apperrors.New(apperrors.ErrCodeRedisError, "写入图书缓存失败").WithCause(err)
	}
	return nil
}

// Invalidate 删除缓存
func (c *BookListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, bookListKey).Err(); err != nil {
		return apperrors.New(apperrors.ErrCodeRedisError, "清除图书缓存失败").WithCause(err)
	}
	return nil
}
