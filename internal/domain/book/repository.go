package book

import (
	"context"
)

// Finder 按两种编号查询图书
type Finder interface {
	// FindByID 按UUID主键查询,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByLegacyID 按旧数字编号查询,不存在返回ErrBookNotFound
	FindByLegacyID(ctx context.Context, legacyID int64) (*Book, error)
}

// Repository 图书仓储接口
// 由domain层定义,infrastructure层实现;事务通过context传递
type Repository interface {
	Finder

	// Create 创建图书,旧编号重复返回ErrLegacyIDDuplicate
	Create(ctx context.Context, book *Book) error

	// List 查询图书列表(按创建时间倒序)
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// Update 保存图书全部字段
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书,不存在返回ErrBookNotFound
	Delete(ctx context.Context, id string) error

	// DecrStock 原子扣减库存
	// 单条条件UPDATE: stock = stock - ? WHERE id = ? AND stock >= ?
	// 库存不足返回ErrInsufficientStock,图书不存在返回ErrBookNotFound
	DecrStock(ctx context.Context, id string, quantity int) error
}

// ListParams 列表查询参数,零值表示不过滤
type ListParams struct {
	Keyword        string // 匹配书名、作者
	Genre          string
	BestSellerOnly bool
}

// IsZero 是否为无过滤条件的全量查询
func (p ListParams) IsZero() bool {
	return p == ListParams{}
}

// ListCache 全量图书列表缓存
// Get未命中时返回(nil, false, nil)
type ListCache interface {
	Get(ctx context.Context) ([]*Book, bool, error)
	Set(ctx context.Context, books []*Book) error
	Invalidate(ctx context.Context) error
}
