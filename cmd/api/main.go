package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jgouvea7/streaming-social/internal/api/handler"
	"github.com/jgouvea7/streaming-social/internal/api/middleware"
	"github.com/jgouvea7/streaming-social/internal/api/router"
	"github.com/jgouvea7/streaming-social/internal/config"
	"github.com/jgouvea7/streaming-social/internal/infra/database"
	infraES "github.com/jgouvea7/streaming-social/internal/infra/elasticsearch"
	infraKafka "github.com/jgouvea7/streaming-social/internal/infra/kafka"
	infraMinio "github.com/jgouvea7/streaming-social/internal/infra/minio"
	infraRedis "github.com/jgouvea7/streaming-social/internal/infra/redis"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/recommend"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/internal/service"
	"github.com/jgouvea7/streaming-social/pkg/logger"
	"github.com/jgouvea7/streaming-social/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close(db)

	// 自动迁移数据库表
	if err := database.AutoMigrate(db,
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis（可选，失败则推荐流不走缓存）
	cache, err := infraRedis.New(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis init failed, feed cache disabled", zap.Error(err))
		cache = nil
	} else {
		defer infraRedis.Close(cache)
	}

	// 初始化MinIO（可选，失败则上传接口不可用）
	var storage service.ObjectStorage
	if minioStorage, err := infraMinio.New(&cfg.MinIO); err != nil {
		logger.Warn("MinIO init failed, video upload disabled", zap.Error(err))
	} else {
		storage = minioStorage
	}

	// 初始化Kafka生产者
	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	var esClient *infraES.Client
	var indexer service.SearchIndexer
	videoRepo := repository.NewVideoRepository(db)

	if client, err := infraES.New(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		esClient = client
		syncer := infraES.NewSyncer(client, videoRepo, cfg.Elasticsearch.Index["videos"])
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := syncer.EnsureIndex(ctx); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		cancel()
		indexer = syncer
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 初始化依赖（Repository -> Service -> Handler）
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireDuration(), cfg.App.Name)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	videoService := service.NewVideoService(videoRepo, userRepo, storage, indexer)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo)
	likeService := service.NewLikeService(db, userRepo, videoRepo, commentRepo, likeRepo, producer)
	searchService := service.NewSearchService(videoRepo, esClient, cfg.Elasticsearch.Index["videos"])

	recommender := recommend.NewPipeRecommender(
		cfg.Recommender.Command,
		cfg.Recommender.Args,
		cfg.Recommender.TimeoutDuration(),
	)
	recommendService := service.NewRecommendService(videoRepo, recommender, cache, cfg.Recommender.CacheTTLDuration())

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	searchHandler := handler.NewSearchHandler(searchService, recommendService)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler(cfg))

	// 注册业务路由
	router.Setup(r, tokens, authHandler, userHandler, videoHandler, commentHandler, likeHandler, searchHandler)

	// 启动HTTP服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "Service is healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mode":      cfg.App.Mode,
		})
	}
}
