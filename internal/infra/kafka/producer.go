package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jgouvea7/streaming-social/internal/config"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EngagementEvent 点赞切换互动事件消息体
type EngagementEvent struct {
	TargetKind string `json:"target_kind"`
	TargetID   int64  `json:"target_id"`
	VideoID    int64  `json:"video_id"`
	UserID     int64  `json:"user_id"`
	Liked      bool   `json:"liked"`
	LikeCount  int64  `json:"like_count"`
	OccurredAt int64  `json:"occurred_at"`
}

// Producer Kafka 生产者
type Producer struct {
	writer          *kafka.Writer
	engagementTopic string
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	topic := cfg.Topics["engagement"]
	if topic == "" {
		topic = "engagement-events"
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("engagement_topic", topic),
	)

	return &Producer{writer: writer, engagementTopic: topic}
}

// PublishEngagement 发布互动事件到 Kafka
func (p *Producer) PublishEngagement(ctx context.Context, event *EngagementEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal engagement event: %w", err)
	}

	// 以视频为分区键，同一视频的事件保持有序
	msg := kafka.Message{
		Topic: p.engagementTopic,
		Key:   []byte(fmt.Sprintf("video-%d", event.VideoID)),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send engagement event: %w", err)
	}

	logger.Info("Engagement event sent",
		zap.String("target_kind", event.TargetKind),
		zap.Int64("target_id", event.TargetID),
		zap.Bool("liked", event.Liked),
	)

	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}
