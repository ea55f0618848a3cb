// Package messaging 订单事件发布
//
// 事件在数据库提交之后发布,发布失败只记录日志,不影响下单结果。
// RabbitMQ不可用时由熔断器快速失败,避免每个请求都等待连接超时。
package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/pkg/circuitbreaker"
	"github.com/xiebiao/online-bookstore/pkg/metrics"
)

// Sender 底层消息发送(mq.Publisher实现)
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Close() error
}

// Publisher 带熔断保护的事件发布者
type Publisher struct {
	sender  Sender
	breaker *circuitbreaker.CircuitBreaker
	timeout time.Duration
	logger  *zap.Logger
}

// NewPublisher 创建事件发布者
// 连续5次失败后熔断30秒,熔断状态同步到circuit_breaker_state指标
func NewPublisher(sender Sender, logger *zap.Logger) *Publisher {
	breaker := circuitbreaker.NewCircuitBreaker("order-events", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			logger.Warn("熔断器状态变更",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	metrics.CircuitBreakerState.WithLabelValues(breaker.Name()).Set(float64(circuitbreaker.StateClosed))

	return &Publisher{
		sender:  sender,
		breaker: breaker,
		timeout: 3 * time.Second,
		logger:  logger,
	}
}

// Publish 发布事件
func (p *Publisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	err := p.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.sender.Publish(ctx, routingKey, event)
	})

	switch {
	case err == nil:
		metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "success").Inc()
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "rejected").Inc()
	default:
		metrics.MessagesPublishedTotal.WithLabelValues(routingKey, "failure").Inc()
	}
	return err
}

// Close 关闭底层连接
func (p *Publisher) Close() error {
	return p.sender.Close()
}

// Nop 不发送任何消息(未启用消息队列时使用)
type Nop struct{}

// Publish 丢弃事件
func (Nop) Publish(context.Context, string, interface{}) error { return nil }

// Close 无操作
func (Nop) Close() error { return nil }
