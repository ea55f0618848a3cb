package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/online-bookstore/internal/domain/order"
	"github.com/xiebiao/online-bookstore/pkg/mq"
)

func newWatchOrdersCmd() *cobra.Command {
	var queue string

	cmd := &cobra.Command{
		Use:   "watch-orders",
		Short: "订阅订单事件并打印",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.MQ.Enabled {
				return fmt.Errorf("消息队列未启用(mq.enabled=false)")
			}
			if queue == "" {
				queue = cfg.MQ.Queue
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, queue,
				[]string{order.RoutingKeyPlaced, order.RoutingKeyStatusUpdated}, log)
			if err != nil {
				return err
			}
			defer func() { _ = consumer.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return consumer.Consume(ctx, orderEventHandler(log))
		},
	}

	cmd.Flags().StringVar(&queue, "queue", "", "队列名(默认mq.queue)")
	return cmd
}

// orderEventHandler 解码订单事件并记录日志
// 无法识别的消息直接确认,避免反复重新入队
func orderEventHandler(log *zap.Logger) mq.Handler {
	return func(routingKey string, body []byte) error {
		fields, err := describeOrderEvent(routingKey, body)
		if err != nil {
			log.Warn("丢弃无法解析的消息", zap.String("routing_key", routingKey), zap.Error(err))
			return nil
		}
		log.Info("收到订单事件", fields...)
		return nil
	}
}

func describeOrderEvent(routingKey string, body []byte) ([]zap.Field, error) {
	switch routingKey {
	case order.RoutingKeyPlaced:
		var evt order.PlacedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			return nil, err
		}
		return []zap.Field{
			zap.String("event", routingKey),
			zap.String("order_no", evt.OrderNo),
			zap.Uint("user_id", evt.UserID),
			zap.String("total_amount", evt.TotalAmount),
			zap.Int("items", len(evt.Items)),
		}, nil
	case order.RoutingKeyStatusUpdated:
		var evt order.StatusUpdatedEvent
		if err := json.Unmarshal(body, &evt); err != nil {
			return nil, err
		}
		return []zap.Field{
			zap.String("event", routingKey),
			zap.String("order_no", evt.OrderNo),
			zap.Uint("user_id", evt.UserID),
			zap.String("status", string(evt.Status)),
		}, nil
	default:
		return nil, fmt.Errorf("未知的路由键: %s", routingKey)
	}
}

