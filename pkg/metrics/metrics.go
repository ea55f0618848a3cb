// Package metrics Prometheus指标
//
// 指标在包初始化时注册到默认Registry,通过/metrics端点暴露:
//   - HTTP: 请求数、耗时、并发数
//   - 订单: 下单成功/拒绝、下单耗时、状态变更
//   - 缓存/消息队列/熔断器: 命中率、发布与消费结果、熔断状态
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

var (
	// HTTPRequestsTotal HTTP请求总数
	// 标签: method、path(路由模板)、status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时(秒)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时(秒)",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// OrdersPlacedTotal 下单成功总数
	OrdersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "下单成功总数",
		},
	)

	// OrdersRejectedTotal 下单被拒绝总数
	// reason: book_not_found | insufficient_stock | price_mismatch | invalid | error
	OrdersRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_rejected_total",
			Help:      "下单被拒绝总数",
		},
		[]string{"reason"},
	)

	// OrderPlacementDuration 下单耗时(秒)
	OrderPlacementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_placement_duration_seconds",
			Help:      "下单耗时(秒)",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// OrderStatusUpdatesTotal 订单状态变更总数
	OrderStatusUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_updates_total",
			Help:      "订单状态变更总数",
		},
		[]string{"status"},
	)

	// BookCacheRequestsTotal 图书列表缓存访问
	// result: hit | miss | error
	BookCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "book_cache_requests_total",
			Help:      "图书列表缓存访问总数",
		},
		[]string{"result"},
	)

	// MessagesPublishedTotal 消息发布总数
	// result: success | failure | rejected(熔断)
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)

	// MessagesConsumedTotal 消息消费总数
	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	// CircuitBreakerState 熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)
)

// ObserveOrderRejected 记录一次下单拒绝
func ObserveOrderRejected(reason string) {
	OrdersRejectedTotal.WithLabelValues(reason).Inc()
}
