package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// 1. ID为UUID主键;LegacyID是历史数据沿用的数字编号,两者都可作为查询键
// 2. 价格使用decimal,避免浮点误差
// 3. 库存任何时候都不能为负
type Book struct {
	ID          string
	LegacyID    *int64
	Title       string
	Author      string
	Genre       string
	Price       decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
	BestSeller  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateParams 新建图书参数
type CreateParams struct {
	LegacyID    *int64
	Title       string
	Author      string
	Genre       string
	Price       decimal.Decimal
	Stock       int
	Description string
	ImageURL    string
	BestSeller  bool
}

// Patch 部分更新,nil字段保持不变
type Patch struct {
	LegacyID    *int64
	Title       *string
	Author      *string
	Genre       *string
	Price       *decimal.Decimal
	Stock       *int
	Description *string
	ImageURL    *string
	BestSeller  *bool
}

// NewBook 创建新图书(工厂方法)
func NewBook(p CreateParams) (*Book, error) {
	b := &Book{
		ID:          uuid.NewString(),
		LegacyID:    p.LegacyID,
		Title:       strings.TrimSpace(p.Title),
		Author:      strings.TrimSpace(p.Author),
		Genre:       strings.TrimSpace(p.Genre),
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		BestSeller:  p.BestSeller,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// Apply 应用部分更新,校验失败时实体保持原样
func (b *Book) Apply(p Patch) error {
	next := *b
	if p.LegacyID != nil {
		next.LegacyID = p.LegacyID
	}
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Author != nil {
		next.Author = strings.TrimSpace(*p.Author)
	}
	if p.Genre != nil {
		next.Genre = strings.TrimSpace(*p.Genre)
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.Stock != nil {
		next.Stock = *p.Stock
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.ImageURL != nil {
		next.ImageURL = *p.ImageURL
	}
	if p.BestSeller != nil {
		next.BestSeller = *p.BestSeller
	}

	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now()
	*b = next
	return nil
}

// HasStock 库存是否满足购买数量
func (b *Book) HasStock(quantity int) bool {
	return b.Stock >= quantity
}

// Subtotal 按当前售价计算小计
func (b *Book) Subtotal(quantity int) decimal.Decimal {
	return b.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

func (b *Book) validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.Author == "" {
		return ErrAuthorRequired
	}
	if b.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if b.Stock < 0 {
		return ErrInvalidStock
	}
	if b.LegacyID != nil && *b.LegacyID <= 0 {
		return ErrInvalidLegacyID
	}
	return nil
}
