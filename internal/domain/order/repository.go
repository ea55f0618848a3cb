package order

import (
	"context"
)

// Repository 订单仓储接口
// 由domain层定义,infrastructure层实现;事务通过context传递
type Repository interface {
	// Create 创建订单(订单和明细在同一事务中写入)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含明细)
	FindByID(ctx context.Context, id string) (*Order, error)

	// ListByUser 查询用户自己的订单,按创建时间倒序
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)

	// ListAll 查询全部订单,按创建时间倒序,同时解析下单用户的姓名和邮箱
	ListAll(ctx context.Context) ([]*Order, error)

	// UpdateStatus 更新订单状态,返回更新后的订单
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
}
