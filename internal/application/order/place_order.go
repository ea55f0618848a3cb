package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/book"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/infrastructure/persistence/gormdb"
	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
	"github.com/xiebiao/online-bookstore/pkg/tracing"
)

const tracerName = "order-service"

// priceTolerance 客户端金额与服务端金额允许的误差
var priceTolerance = decimal.RequireFromString("0.01")

// EventPublisher 订单事件发布
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// PlaceOrderUseCase 下单用例
//
// 校验顺序固定,任何一步失败都不写库:
//  1. 逐项解析图书(UUID或旧编号),不存在 → BookNotFound
//  2. 逐项检查库存 → InsufficientStock(书名)
//  3. 按数据库中的价格计算总额,不信任客户端价格
//  4. |服务端总额 - 客户端总额| > 0.01 → PriceMismatch
//
// 校验通过后在同一个事务里扣库存、写订单。扣库存是带条件的UPDATE
// (stock >= ?),两个并发订单抢最后的库存时只有一个能成功,另一个
// 整体回滚并返回InsufficientStock。
type PlaceOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager *gormdb.TxManager
	cache     book.ListCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager *gormdb.TxManager,
	cache book.ListCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          uint // 从JWT中提取
	Items           []PlaceOrderItem
	ClientTotal     decimal.Decimal
	ShippingAddress order.ShippingAddress
	CardNumber      string // 只保留后四位
}

// PlaceOrderItem 下单明细
type PlaceOrderItem struct {
	BookID   string // UUID或旧数字编号
	Quantity int
}

// PlaceOrderResponse 下单响应
type PlaceOrderResponse struct {
	OrderID     string  `json:"order_id"`
	OrderNo     string  `json:"order_no"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (resp *PlaceOrderResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	span.SetAttributes(
		attribute.Int("order.user_id", int(req.UserID)),
		attribute.Int("order.items", len(req.Items)),
	)
	defer func() {
		metrics.OrderPlacementDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			tracing.RecordError(span, err)
			metrics.ObserveOrderRejected(rejectReason(err))
		}
		span.End()
	}()

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	cardLast4, err := order.MaskCardNumber(req.CardNumber)
	if err != nil {
		return nil, err
	}

	// 1. 解析图书
	books := make([]*book.Book, len(req.Items))
	for i, item := range req.Items {
		b, err := book.Resolve(ctx, uc.bookRepo, item.BookID)
		if err != nil {
			if errors.Is(err, book.ErrBookNotFound) {
				return nil, order.BookNotFound(item.BookID)
			}
			return nil, err
		}
		books[i] = b
	}

	// 2. 检查库存
	for i, item := range req.Items {
		if !books[i].HasStock(item.Quantity) {
			return nil, order.InsufficientStock(books[i].Title)
		}
	}

	// 3. 按权威价格计算总额,同时生成明细快照
	serverTotal := decimal.Zero
	items := make([]order.LineItem, len(req.Items))
	for i, item := range req.Items {
		b := books[i]
		items[i] = order.LineItem{
			BookID:   b.ID,
			Title:    b.Title,
			Quantity: item.Quantity,
			Price:    b.Price,
		}
		serverTotal = serverTotal.Add(b.Subtotal(item.Quantity))
	}

	// 4. 金额校验
	if serverTotal.Sub(req.ClientTotal).Abs().GreaterThan(priceTolerance) {
		uc.logger.Warn("订单金额校验失败",
			zap.Uint("user_id", req.UserID),
			zap.String("server_total", serverTotal.String()),
			zap.String("client_total", req.ClientTotal.String()),
		)
		return nil, order.ErrPriceMismatch
	}

	o, err := order.NewOrder(req.UserID, items, serverTotal, req.ShippingAddress, order.Payment{CardLast4: cardLast4})
	if err != nil {
		return nil, err
	}

	// 5-6. 扣库存并写订单,任何一步失败整体回滚
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		for i, item := range req.Items {
			if err := uc.bookRepo.DecrStock(txCtx, books[i].ID, item.Quantity); err != nil {
				switch {
				case errors.Is(err, book.ErrInsufficientStock):
					return order.InsufficientStock(books[i].Title)
				case errors.Is(err, book.ErrBookNotFound):
					return order.BookNotFound(item.BookID)
				default:
					return err
				}
			}
		}
		return uc.orderRepo.Create(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("order.id", o.ID))
	metrics.OrdersPlacedTotal.Inc()
	uc.logger.Info("下单成功",
		zap.String("order_id", o.ID),
		zap.String("order_no", o.OrderNo),
		zap.Uint("user_id", o.UserID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	// 7. 提交后的副作用只记录日志
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("清除图书缓存失败", zap.Error(err))
	}
	if err := uc.publisher.Publish(ctx, order.RoutingKeyPlaced, order.NewPlacedEvent(o)); err != nil {
		uc.logger.Warn("发布下单事件失败", zap.String("order_id", o.ID), zap.Error(err))
	}

	return &PlaceOrderResponse{
		OrderID:     o.ID,
		OrderNo:     o.OrderNo,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		Status:      o.Status.String(),
	}, nil
}

// validateRequest 请求格式校验,不访问数据库
func validateRequest(req PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return order.ErrInvalidOrderItems
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return order.ErrInvalidQuantity
		}
		if item.BookID == "" {
			return apperrors.New(apperrors.ErrCodeInvalidParams, "图书编号不能为空")
		}
	}
	if req.ClientTotal.IsNegative() {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "订单金额不能为负数")
	}
	return req.ShippingAddress.Validate()
}

// rejectReason 拒绝原因(orders_rejected_total的reason标签)
func rejectReason(err error) string {
	switch {
	case apperrors.IsCode(err, apperrors.ErrCodeOrderBookNotFound):
		return "book_not_found"
	case apperrors.IsCode(err, apperrors.ErrCodeInsufficientStock):
		return "insufficient_stock"
	case apperrors.IsCode(err, apperrors.ErrCodePriceMismatch):
		return "price_mismatch"
	case apperrors.IsCode(err, apperrors.ErrCodeInvalidParams):
		return "invalid"
	default:
		return "error"
	}
}
