package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/online-bookstore/internal/application/order"
	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/internal/interface/http/dto"
	"github.com/xiebiao/online-bookstore/internal/interface/http/middleware"
	"github.com/xiebiao/online-bookstore/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrderUseCase   *apporder.PlaceOrderUseCase
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase
	listAllUseCase      *apporder.ListAllOrdersUseCase
	getOrderUseCase     *apporder.GetOrderUseCase
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase
	statsUseCase        *apporder.DashboardStatsUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	listMyOrdersUseCase *apporder.ListMyOrdersUseCase,
	listAllUseCase *apporder.ListAllOrdersUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	updateStatusUseCase *apporder.UpdateOrderStatusUseCase,
	statsUseCase *apporder.DashboardStatsUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:   placeOrderUseCase,
		listMyOrdersUseCase: listMyOrdersUseCase,
		listAllUseCase:      listAllUseCase,
		getOrderUseCase:     getOrderUseCase,
		updateStatusUseCase: updateStatusUseCase,
		statsUseCase:        statsUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  按数据库价格重新计算总额,与客户端金额相差超过0.01时拒绝;扣库存和写订单在同一事务内
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.PlaceOrderResponse} "下单成功"
// @Failure      400 {object} response.Response "图书不存在/库存不足/金额校验失败/参数错误"
// @Failure      401 {object} response.Response "未登录"
// @Failure      500 {object} response.Response "服务器错误"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]apporder.PlaceOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.PlaceOrderItem{
			BookID:   item.BookID.String(),
			Quantity: item.Quantity,
		}
	}

	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:      middleware.GetUserID(c),
		Items:       items,
		ClientTotal: *req.TotalAmount,
		ShippingAddress: order.ShippingAddress{
			Name:       req.ShippingAddress.Name,
			Email:      req.ShippingAddress.Email,
			Phone:      req.ShippingAddress.Phone,
			Address:    req.ShippingAddress.Address,
			City:       req.ShippingAddress.City,
			PostalCode: req.ShippingAddress.PostalCode,
		},
		CardNumber: req.PaymentDetails.CardNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "下单成功", result)
}

// ListMyOrders 我的订单
// @Summary      我的订单
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderInfo} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /orders/my-orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	orders, err := h.listMyOrdersUseCase.Execute(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Description  普通用户只能查看自己的订单
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderInfo} "查询成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	info, err := h.getOrderUseCase.Execute(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// ListAllOrders 全部订单
// @Summary      全部订单(管理员)
// @Description  按下单时间倒序,包含下单用户姓名和邮箱
// @Tags         订单管理
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderInfo} "查询成功"
// @Failure      403 {object} response.Response "无权限"
// @Router       /orders/admin/all [get]
func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.listAllUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// UpdateOrderStatus 修改订单状态
// @Summary      修改订单状态(管理员)
// @Description  状态取值 Pending/Processing/Shipped/Delivered/Cancelled,不限制流转方向
// @Tags         订单管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                         true  "订单ID"
// @Param        request  body  dto.UpdateOrderStatusRequest   true  "新状态"
// @Success      200 {object} response.Response{data=apporder.OrderInfo} "修改成功"
// @Failure      400 {object} response.Response "无效的状态"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/admin/status/{id} [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	info, err := h.updateStatusUseCase.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Stats 管理后台统计
// @Summary      订单统计(管理员)
// @Description  营收和销量不含已取消订单
// @Tags         订单管理
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=apporder.DashboardStats} "查询成功"
// @Failure      403 {object} response.Response "无权限"
// @Router       /orders/admin/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
