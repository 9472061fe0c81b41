package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jgouvea7/streaming-social/internal/api/dto"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrVideoNotFound = errors.New("视频不存在")

// ObjectStorage 视频文件存储（MinIO 适配）
// 核心只保存返回的定位地址，不接触文件字节
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// SearchIndexer 视频搜索索引同步（ES 适配）
type SearchIndexer interface {
	IndexVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, videoID int64) error
}

type VideoService struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	storage   ObjectStorage // 可为 nil（无存储后端时仅保存定位地址）
	indexer   SearchIndexer // 可为 nil，索引同步为尽力而为
}

func NewVideoService(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, storage ObjectStorage, indexer SearchIndexer) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		storage:   storage,
		indexer:   indexer,
	}
}

// Upload 上传视频：文件进 MinIO，记录里只存定位地址
func (s *VideoService) Upload(ownerID int64, req *dto.VideoUploadRequest, file io.Reader, size int64, format string) (*dto.VideoInfo, error) {
	if s.storage == nil {
		return nil, errors.New("存储后端未配置")
	}

	objectName := fmt.Sprintf("%d/%d.%s", ownerID, time.Now().UnixNano(), format)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	locator, err := s.storage.Upload(ctx, objectName, file, size, "video/"+format)
	if err != nil {
		return nil, fmt.Errorf("上传文件失败: %w", err)
	}

	return s.Create(ownerID, req, locator)
}

// Create 创建视频记录（edited=false, likeCount=0）
func (s *VideoService) Create(ownerID int64, req *dto.VideoUploadRequest, playURL string) (*dto.VideoInfo, error) {
	if _, err := s.userRepo.GetByID(ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	video := &model.Video{
		OwnerID: ownerID,
		Title:   req.Title,
		PlayURL: playURL,
		Tags:    req.Tags,
	}

	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}

	s.syncIndex(video)

	return toVideoInfo(video), nil
}

// GetByID 获取视频详情
func (s *VideoService) GetByID(id int64) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return toVideoInfo(video), nil
}

// List 视频列表（公开，可按作者筛选）
func (s *VideoService) List(page, pageSize int, ownerID *int64) (*dto.VideoListData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.List(skip, pageSize, ownerID)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, pageSize), nil
}

// Update 更新视频信息（仅作者本人；likeCount 永不接受外部写入）
func (s *VideoService) Update(id, actingUserID int64, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByIDWithOwner(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := authorizeOwner(actingUserID, video.OwnerID); err != nil {
		return nil, err
	}

	// 只接受标题和标签；计数字段不进 updates，由点赞引擎独占
	updates := map[string]interface{}{"edited": true}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}

	updated, err := s.videoRepo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	s.syncIndex(updated)

	return toVideoInfo(updated), nil
}

// Delete 删除视频（仅作者本人；级联删除评论和点赞）
func (s *VideoService) Delete(id, actingUserID int64) error {
	video, err := s.videoRepo.GetByIDWithOwner(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if err := authorizeOwner(actingUserID, video.OwnerID); err != nil {
		return err
	}

	if err := s.videoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	s.dropIndex(id)

	return nil
}

// syncIndex 同步视频到搜索索引；失败只记日志
func (s *VideoService) syncIndex(video *model.Video) {
	if s.indexer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.indexer.IndexVideo(ctx, video); err != nil {
		logger.Warn("Sync video to search index failed",
			zap.Int64("video_id", video.ID), zap.Error(err))
	}
}

// dropIndex 从搜索索引移除视频；失败只记日志
func (s *VideoService) dropIndex(videoID int64) {
	if s.indexer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.indexer.DeleteVideo(ctx, videoID); err != nil {
		logger.Warn("Remove video from search index failed",
			zap.Int64("video_id", videoID), zap.Error(err))
	}
}

func toVideoInfo(video *model.Video) *dto.VideoInfo {
	return &dto.VideoInfo{
		ID:        video.ID,
		OwnerID:   video.OwnerID,
		Title:     video.Title,
		PlayURL:   video.PlayURL,
		Tags:      video.Tags,
		LikeCount: video.LikeCount,
		Edited:    video.Edited,
		CreatedAt: video.CreatedAt,
		UpdatedAt: video.UpdatedAt,
	}
}

func buildVideoListData(videos []model.Video, total int64, page, pageSize int) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
