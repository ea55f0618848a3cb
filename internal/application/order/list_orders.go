package order

import (
	"context"
	"errors"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// ListMyOrdersUseCase 我的订单
type ListMyOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListMyOrdersUseCase 创建我的订单用例
func NewListMyOrdersUseCase(orderRepo order.Repository) *ListMyOrdersUseCase {
	return &ListMyOrdersUseCase{orderRepo: orderRepo}
}

// Execute 只返回当前用户自己的订单,按创建时间倒序
func (uc *ListMyOrdersUseCase) Execute(ctx context.Context, userID uint) ([]OrderInfo, error) {
	orders, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrderInfos(orders), nil
}

// ListAllOrdersUseCase 全部订单(管理员)
type ListAllOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListAllOrdersUseCase 创建全部订单用例
func NewListAllOrdersUseCase(orderRepo order.Repository) *ListAllOrdersUseCase {
	return &ListAllOrdersUseCase{orderRepo: orderRepo}
}

// Execute 按创建时间倒序返回全部订单,包含下单用户姓名和邮箱
func (uc *ListAllOrdersUseCase) Execute(ctx context.Context) ([]OrderInfo, error) {
	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderInfos(orders), nil
}

// GetOrderUseCase 订单详情
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// Execute 查询订单详情
// 普通用户只能查看自己的订单,他人订单同样返回不存在,不暴露订单是否存在
func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID string, userID uint, role string) (*OrderInfo, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}

	if role != jwt.RoleAdmin && !o.OwnedBy(userID) {
		return nil, order.ErrOrderNotFound
	}

	info := toOrderInfo(o)
	return &info, nil
}
