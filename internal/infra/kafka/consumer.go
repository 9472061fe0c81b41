package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EngagementHandler 处理互动事件的回调函数
type EngagementHandler func(event *EngagementEvent) error

// StartEngagementConsumer 启动互动事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartEngagementConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EngagementHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka engagement consumer stopped")
	}()

	logger.Info("Kafka engagement consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		var event EngagementEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("Failed to unmarshal engagement event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		logger.Info("Received engagement event",
			zap.String("target_kind", event.TargetKind),
			zap.Int64("target_id", event.TargetID),
			zap.Bool("liked", event.Liked),
		)

		if err := handler(&event); err != nil {
			logger.Error("Failed to handle engagement event",
				zap.String("target_kind", event.TargetKind),
				zap.Int64("target_id", event.TargetID),
				zap.Error(err),
			)
		}
	}
}
