package book

import (
	"time"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
)

// BookInfo 图书信息DTO
// 价格以JSON数字输出(元,两位小数)
type BookInfo struct {
	ID          string  `json:"id"`
	LegacyID    *int64  `json:"legacy_id,omitempty"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	BestSeller  bool    `json:"best_seller"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// toBookInfo 领域实体 → DTO
func toBookInfo(b *book.Book) BookInfo {
	return BookInfo{
		ID:          b.ID,
		LegacyID:    b.LegacyID,
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Price:       b.Price.Round(2).InexactFloat64(),
		Stock:       b.Stock,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		BestSeller:  b.BestSeller,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookInfos(books []*book.Book) []BookInfo {
	list := make([]BookInfo, len(books))
	for i, b := range books {
		list[i] = toBookInfo(b)
	}
	return list
}
