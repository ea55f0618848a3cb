package book

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 1. 无过滤条件的全量列表走Redis缓存
// 2. 缓存读写失败只记录日志,回退到数据库
type ListBooksUseCase struct {
	bookService book.Service
	cache       book.ListCache
	logger      *zap.Logger
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service, cache book.ListCache, logger *zap.Logger) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		cache:       cache,
		logger:      logger,
	}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Keyword        string // 搜索书名、作者
	Genre          string
	BestSellerOnly bool
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]BookInfo, error) {
	params := book.ListParams{
		Keyword:        strings.TrimSpace(req.Keyword),
		Genre:          strings.TrimSpace(req.Genre),
		BestSellerOnly: req.BestSellerOnly,
	}

	if params.IsZero() {
		cached, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.logger.Warn("读取图书缓存失败", zap.Error(err))
		}
		if ok {
			return toBookInfos(cached), nil
		}
	}

	books, err := uc.bookService.List(ctx, params)
	if err != nil {
		return nil, err
	}

	if params.IsZero() {
		if err := uc.cache.Set(ctx, books); err != nil {
			uc.logger.Warn("写入图书缓存失败", zap.Error(err))
		}
	}

	return toBookInfos(books), nil
}

// GetBookUseCase 图书详情用例,支持UUID和旧数字编号
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, ref string) (*BookInfo, error) {
	b, err := uc.bookService.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	info := toBookInfo(b)
	return &info, nil
}

// NoCache 不缓存(未配置Redis的场景和测试使用)
type NoCache struct{}

func (NoCache) Get(context.Context) ([]*book.Book, bool, error) { return nil, false, nil }
func (NoCache) Set(context.Context, []*book.Book) error { return nil }
func (NoCache) Invalidate(context.Context) error { return nil }
