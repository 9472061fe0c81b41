package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	infraES "github.com/jgouvea7/streaming-social/internal/infra/elasticsearch"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SearchService struct {
	videoRepo *repository.VideoRepository
	es        *infraES.Client // 可为 nil，搜索直接走 DB
	index     string
}

func NewSearchService(videoRepo *repository.VideoRepository, es *infraES.Client, index string) *SearchService {
	if index == "" {
		index = "videos"
	}
	return &SearchService{videoRepo: videoRepo, es: es, index: index}
}

// SearchVideos 搜索视频（ES 优先，失败降级到 DB）
func (s *SearchService) SearchVideos(req *dto.SearchVideoRequest) (*dto.VideoListData, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	if s.es != nil {
		data, err := s.searchFromES(req)
		if err == nil {
			return data, nil
		}
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
	}

	return s.searchFromDB(req)
}

func (s *SearchService) searchFromES(req *dto.SearchVideoRequest) (*dto.VideoListData, error) {
	query := map[string]interface{}{
		"from": (req.Page - 1) * req.PageSize,
		"size": req.PageSize,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  req.Keyword,
				"fields": []string{"title^2", "tags"},
			},
		},
		"sort": []map[string]interface{}{
			{"like_count": map[string]string{"order": "desc"}},
			{"created_at": map[string]string{"order": "desc"}},
		},
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.es.Search(ctx, s.index, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source infraES.VideoDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("decode ES response: %w", err)
	}

	// 命中后回源 DB 拿权威数据，索引只负责召回和排序
	items := make([]dto.VideoInfo, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		video, err := s.videoRepo.GetByID(hit.Source.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // 索引里残留的已删除视频
			}
			return nil, err
		}
		items = append(items, *toVideoInfo(video))
	}

	total := esResp.Hits.Total.Value
	totalPages := (total + int64(req.PageSize) - 1) / int64(req.PageSize)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *SearchService) searchFromDB(req *dto.SearchVideoRequest) (*dto.VideoListData, error) {
	skip := (req.Page - 1) * req.PageSize
	videos, total, err := s.videoRepo.Search(req.Keyword, skip, req.PageSize)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, req.Page, req.PageSize), nil
}
