package order

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

// UpdateOrderStatusUseCase 修改订单状态(管理员)
// 状态必须在枚举内,不限制流转方向
type UpdateOrderStatusUseCase struct {
	orderRepo order.Repository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewUpdateOrderStatusUseCase 创建修改状态用例
func NewUpdateOrderStatusUseCase(orderRepo order.Repository, publisher EventPublisher, logger *zap.Logger) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute 修改状态并返回更新后的订单
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, orderID, status string) (*OrderInfo, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateOrderStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID), attribute.String("order.status", status))

	s, err := order.ParseStatus(status)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	o, err := uc.orderRepo.UpdateStatus(ctx, orderID, s)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.OrderStatusUpdatesTotal.WithLabelValues(s.String()).Inc()
	uc.logger.Info("订单状态已更新",
		zap.String("order_id", o.ID),
		zap.String("status", s.String()),
	)

	if err := uc.publisher.Publish(ctx, order.RoutingKeyStatusUpdated, order.NewStatusUpdatedEvent(o)); err != nil {
		uc.logger.Warn("发布状态变更事件失败", zap.String("order_id", o.ID), zap.Error(err))
	}

	info := toOrderInfo(o)
	return &info, nil
}
