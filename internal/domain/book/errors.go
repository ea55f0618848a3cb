package book

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrLegacyIDDuplicate 旧编号已被占用
	ErrLegacyIDDuplicate = apperrors.New(apperrors.ErrCodeLegacyIDDuplicate, "图书编号已存在")

	ErrTitleRequired   = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")
	ErrAuthorRequired  = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")
	ErrInvalidPrice    = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")
	ErrInvalidStock    = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")
	ErrInvalidLegacyID = apperrors.New(apperrors.ErrCodeInvalidParams, "图书编号必须为正整数")
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 库存不足(原子扣减失败)
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)
