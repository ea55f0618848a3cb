package gormdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// orderRepository 订单仓储实现(GORM)
// 1. Order和OrderItem是聚合关系,一起保存
// 2. 查询时Preload明细和下单用户,避免N+1
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
// GORM自动保存关联的Items;User只是查询用的关联,不写入
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := getDB(ctx, r.db).Omit("User").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找订单
// Preload会执行:
// 1. SELECT * FROM orders WHERE id = ?
// 2. SELECT * FROM order_items WHERE order_id IN (?)
// 3. SELECT * FROM users WHERE id IN (?)
func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	err := r.preload(getDB(ctx, r.db)).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := r.preload(getDB(ctx, r.db)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// ListAll 全部订单,按创建时间倒序,下单用户的姓名和邮箱一起加载
func (r *orderRepository) ListAll(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	err := r.preload(getDB(ctx, r.db)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// UpdateStatus 只更新状态和更新时间,不动明细
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	db := getDB(ctx, r.db)
	result := db.Model(&OrderModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return nil, order.ErrOrderNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *orderRepository) preload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("User")
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			OrderID:  o.ID,
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return &OrderModel{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Shipping: ShippingColumns{
			Name:       o.ShippingAddress.Name,
			Email:      o.ShippingAddress.Email,
			Phone:      o.ShippingAddress.Phone,
			Address:    o.ShippingAddress.Address,
			City:       o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode,
		},
		CardLast4: o.Payment.CardLast4,
		Status:    string(o.Status),
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.LineItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.LineItem{
			BookID:   item.BookID,
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	o := &order.Order{
		ID:          model.ID,
		OrderNo:     model.OrderNo,
		UserID:      model.UserID,
		Items:       items,
		TotalAmount: model.TotalAmount,
		ShippingAddress: order.ShippingAddress{
			Name:       model.Shipping.Name,
			Email:      model.Shipping.Email,
			Phone:      model.Shipping.Phone,
			Address:    model.Shipping.Address,
			City:       model.Shipping.City,
			PostalCode: model.Shipping.PostalCode,
		},
		Payment:   order.Payment{CardLast4: model.CardLast4},
		Status:    order.Status(model.Status),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.User != nil {
		o.Customer = &order.Customer{
			ID:    model.User.ID,
			Name:  model.User.Name,
			Email: model.User.Email,
		}
	}
	return o
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}
