package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"
)

// videoMapping 视频索引映射
const videoMapping = `{
  "mappings": {
    "properties": {
      "id":            {"type": "long"},
      "owner_id":      {"type": "long"},
      "title":         {"type": "text"},
      "tags":          {"type": "text"},
      "like_count":    {"type": "long"},
      "comment_count": {"type": "long"},
      "created_at":    {"type": "date"}
    }
  }
}`

// VideoDoc 视频索引文档
type VideoDoc struct {
	ID           int64  `json:"id"`
	OwnerID      int64  `json:"owner_id"`
	Title        string `json:"title"`
	Tags         string `json:"tags,omitempty"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	CreatedAt    string `json:"created_at"`
}

// Syncer 把视频记录同步到搜索索引
type Syncer struct {
	client    *Client
	videoRepo *repository.VideoRepository
	index     string
}

func NewSyncer(client *Client, videoRepo *repository.VideoRepository, index string) *Syncer {
	if index == "" {
		index = "videos"
	}
	return &Syncer{client: client, videoRepo: videoRepo, index: index}
}

// Index 返回同步目标索引名
func (s *Syncer) Index() string {
	return s.index
}

// EnsureIndex 创建视频索引（幂等）
func (s *Syncer) EnsureIndex(ctx context.Context) error {
	return s.client.EnsureIndex(ctx, s.index, videoMapping)
}

// IndexVideo 把一条视频记录写入索引
func (s *Syncer) IndexVideo(ctx context.Context, video *model.Video) error {
	commentCount, err := s.videoRepo.CountComments(video.ID)
	if err != nil {
		return fmt.Errorf("count comments for video %d: %w", video.ID, err)
	}

	doc := VideoDoc{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		LikeCount:    video.LikeCount,
		CommentCount: commentCount,
		CreatedAt:    video.CreatedAt.Format(time.RFC3339),
	}
	if video.Tags != nil {
		doc.Tags = *video.Tags
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := s.client.Index(ctx, s.index, strconv.FormatInt(video.ID, 10), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index video %d: %s", video.ID, resp.String())
	}
	return nil
}

// DeleteVideo 从索引移除视频
func (s *Syncer) DeleteVideo(ctx context.Context, videoID int64) error {
	return s.client.Delete(ctx, s.index, strconv.FormatInt(videoID, 10))
}
