package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// ManageBooksUseCase 图书管理用例(管理员)
// 新增、修改、删除成功后清除列表缓存
type ManageBooksUseCase struct {
	bookService book.Service
	cache       book.ListCache
	logger      *zap.Logger
}

// NewManageBooksUseCase 创建图书管理用例
func NewManageBooksUseCase(bookService book.Service, cache book.ListCache, logger *zap.Logger) *ManageBooksUseCase {
	return &ManageBooksUseCase{
		bookService: bookService,
		cache:       cache,
		logger:      logger,
	}
}

// CreateBookRequest 新增图书请求
type CreateBookRequest struct {
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

// UpdateBookRequest 修改图书请求,nil字段不修改
type UpdateBookRequest struct {
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

// Create 新增图书
func (uc *ManageBooksUseCase) Create(ctx context.Context, req CreateBookRequest) (*BookInfo, error) {
	b, err := uc.bookService.Create(ctx, book.CreateParams{
		LegacyID:    req.LegacyID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BestSeller:  req.BestSeller,
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	info := toBookInfo(b)
	return &info, nil
}

// Update 按UUID或旧编号修改图书
func (uc *ManageBooksUseCase) Update(ctx context.Context, ref string, req UpdateBookRequest) (*BookInfo, error) {
	b, err := uc.bookService.Update(ctx, ref, book.Patch{
		LegacyID:    req.LegacyID,
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BestSeller:  req.BestSeller,
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	info := toBookInfo(b)
	return &info, nil
}

// Delete 按UUID或旧编号删除图书,返回被删除的图书
func (uc *ManageBooksUseCase) Delete(ctx context.Context, ref string) (*BookInfo, error) {
	b, err := uc.bookService.Delete(ctx, ref)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	info := toBookInfo(b)
	return &info, nil
}

func (uc *ManageBooksUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("清除图书缓存失败", zap.Error(err))
	}
}
