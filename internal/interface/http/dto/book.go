package dto

import (
	"github.com/shopspring/decimal"
)

// CreateBookRequest HTTP新增图书请求
// price可以是数字或字符串,统一用decimal接收
type CreateBookRequest struct {
	LegacyID    *int64           `json:"legacy_id" binding:"omitempty,min=1" example:"101"`
	Title       string           `json:"title" binding:"required,max=200" example:"三体"`
	Author      string           `json:"author" binding:"required,max=100" example:"刘慈欣"`
	Genre       string           `json:"genre" binding:"max=50" example:"科幻"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"59.9"`
	Stock       int              `json:"stock" binding:"min=0" example:"100"`
	Description string           `json:"description" binding:"max=5000"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	BestSeller  bool             `json:"best_seller"`
}

// UpdateBookRequest HTTP修改图书请求,未传的字段保持不变
type UpdateBookRequest struct {
	LegacyID    *int64           `json:"legacy_id" binding:"omitempty,min=1"`
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Author      *string          `json:"author" binding:"omitempty,max=100"`
	Genre       *string          `json:"genre" binding:"omitempty,max=50"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=500"`
	BestSeller  *bool            `json:"best_seller"`
}

// ListBooksRequest HTTP图书列表查询参数
type ListBooksRequest struct {
	Keyword    string `form:"keyword" binding:"omitempty,max=100" example:"三体"`
	Genre      string `form:"genre" binding:"omitempty,max=50" example:"科幻"`
	BestSeller bool   `form:"best_seller"`
}
