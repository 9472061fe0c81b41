package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/recommend"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const recommendCacheKey = "recommend:feed"

// RecommendService 推荐流服务
//
// 全量视频连同互动计数喂给外部推荐进程，排序结果短时缓存在
// Redis 中，避免每次请求都拉起子进程。
type RecommendService struct {
	videoRepo   *repository.VideoRepository
	recommender recommend.Recommender
	cache       *redis.Client // 可为 nil，缓存为尽力而为
	cacheTTL    time.Duration
}

func NewRecommendService(videoRepo *repository.VideoRepository, recommender recommend.Recommender, cache *redis.Client, cacheTTL time.Duration) *RecommendService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &RecommendService{
		videoRepo:   videoRepo,
		recommender: recommender,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// GetFeed 获取推荐排序后的视频流
// 推荐进程失败时错误原样上抛，不静默吞掉，也不影响已持久化数据
func (s *RecommendService) GetFeed(ctx context.Context) ([]dto.VideoInfo, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	videos, err := s.videoRepo.ListAll()
	if err != nil {
		return nil, err
	}

	counts, err := s.videoRepo.CommentCounts()
	if err != nil {
		return nil, err
	}

	docs := make([]recommend.VideoDoc, 0, len(videos))
	for i := range videos {
		v := &videos[i]
		docs = append(docs, recommend.VideoDoc{
			ID:           v.ID,
			OwnerID:      v.OwnerID,
			Title:        v.Title,
			PlayURL:      v.PlayURL,
			Tags:         v.Tags,
			LikeCount:    v.LikeCount,
			CommentCount: counts[v.ID],
			CreatedAt:    v.CreatedAt,
		})
	}

	ranked, err := s.recommender.Recommend(ctx, docs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(ranked))
	for _, doc := range ranked {
		items = append(items, dto.VideoInfo{
			ID:        doc.ID,
			OwnerID:   doc.OwnerID,
			Title:     doc.Title,
			PlayURL:   doc.PlayURL,
			Tags:      doc.Tags,
			LikeCount: doc.LikeCount,
			CreatedAt: doc.CreatedAt,
		})
	}

	s.toCache(ctx, items)

	return items, nil
}

// fromCache 读取缓存的推荐结果；未命中或反序列化失败返回 nil
func (s *RecommendService) fromCache(ctx context.Context) []dto.VideoInfo {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, recommendCacheKey).Bytes()
	if err != nil {
		return nil
	}

	var items []dto.VideoInfo
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// toCache 缓存推荐结果；失败只记日志
func (s *RecommendService) toCache(ctx context.Context, items []dto.VideoInfo) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, recommendCacheKey, raw, s.cacheTTL).Err(); err != nil {
		logger.Warn("Cache recommend feed failed", zap.Error(err))
	}
}
