package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jgouvea7/streaming-social/internal/config"
	"github.com/jgouvea7/streaming-social/internal/infra/database"
	infraES "github.com/jgouvea7/streaming-social/internal/infra/elasticsearch"
	infraKafka "github.com/jgouvea7/streaming-social/internal/infra/kafka"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 互动事件消费者：点赞切换提交后刷新视频的搜索索引，
// 保证索引里的 like_count 最终跟上数据库。
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	esClient, err := infraES.New(&cfg.Elasticsearch)
	if err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}

	videoRepo := repository.NewVideoRepository(db)
	syncer := infraES.NewSyncer(esClient, videoRepo, cfg.Elasticsearch.Index["videos"])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["engagement"]
	if topic == "" {
		topic = "engagement-events"
	}
	groupID := "streaming-social-engagement-worker"

	handler := func(event *infraKafka.EngagementEvent) error {
		handleCtx, handleCancel := context.WithTimeout(ctx, 10*time.Second)
		defer handleCancel()

		video, err := videoRepo.GetByID(event.VideoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// 视频已删除，索引一并清掉
				return syncer.DeleteVideo(handleCtx, event.VideoID)
			}
			return err
		}
		return syncer.IndexVideo(handleCtx, video)
	}

	infraKafka.StartEngagementConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)
}
