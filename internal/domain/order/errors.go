package order

import (
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatus 订单状态不在枚举内
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的订单状态")

	// ErrInvalidOrderItems 订单明细不合法
	ErrInvalidOrderItems = apperrors.New(apperrors.ErrCodeInvalidParams, "订单明细不能为空")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidCardNumber 卡号格式错误
	ErrInvalidCardNumber = apperrors.New(apperrors.ErrCodeInvalidParams, "卡号格式错误")

	// ErrPriceMismatch 客户端金额与服务端计算不一致
	ErrPriceMismatch = apperrors.New(apperrors.ErrCodePriceMismatch, "订单金额校验失败,请刷新后重试")
)

// BookNotFound 下单的图书不存在(400,区别于查询图书的404)
func BookNotFound(ref string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOrderBookNotFound, "图书不存在: %s", ref)
}

// InsufficientStock 库存不足,提示具体书名
func InsufficientStock(title string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock, "库存不足: %s", title)
}

// ShippingFieldRequired 收货信息缺失
func ShippingFieldRequired(field string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, "收货信息缺少字段: %s", field)
}
