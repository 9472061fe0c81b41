package service

import (
	"context"
	"errors"
	"time"

	infraKafka "github.com/jgouvea7/streaming-social/internal/infra/kafka"
	"github.com/jgouvea7/streaming-social/internal/model"
	"github.com/jgouvea7/streaming-social/internal/repository"
	"github.com/jgouvea7/streaming-social/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrInvalidTarget 点赞目标类型不合法
var ErrInvalidTarget = errors.New("无效的点赞目标类型")

// LikeService 点赞切换引擎
//
// 点赞边和目标上的反范式化计数只能由本引擎写入。切换的
// 读取-判断-写入序列在单个数据库事务内执行，目标行加 FOR UPDATE
// 行锁：同一目标的并发切换在此串行化，不同目标互不阻塞；
// 事务提交前边和计数要么都变更要么都不变更。
type LikeService struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	likeRepo    *repository.LikeRepository
	producer    *infraKafka.Producer // 可为 nil，事件发布为尽力而为
}

func NewLikeService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	videoRepo *repository.VideoRepository,
	commentRepo *repository.CommentRepository,
	likeRepo *repository.LikeRepository,
	producer *infraKafka.Producer,
) *LikeService {
	return &LikeService{
		db:          db,
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		producer:    producer,
	}
}

// Toggle 切换 (用户, 目标) 的点赞状态
//
// 已有点赞边则删除并将计数减一（下限 0），否则创建并加一。
// 先校验用户存在，再校验目标存在。成功无返回值：再次调用即撤销。
func (s *LikeService) Toggle(userID int64, kind model.TargetKind, targetID int64) error {
	if !kind.Valid() {
		return ErrInvalidTarget
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var event *infraKafka.EngagementEvent

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		switch kind {
		case model.TargetVideo:
			event, err = s.toggleVideo(tx, userID, targetID)
		case model.TargetComment:
			event, err = s.toggleComment(tx, userID, targetID)
		}
		return err
	})
	if err != nil {
		return err
	}

	s.publish(event)
	return nil
}

// toggleVideo 在事务内切换视频点赞（调用方持有事务）
func (s *LikeService) toggleVideo(tx *gorm.DB, userID, videoID int64) (*infraKafka.EngagementEvent, error) {
	videos := s.videoRepo.WithTx(tx)
	likes := s.likeRepo.WithTx(tx)

	video, err := videos.GetByIDForUpdate(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	existing, err := likes.FindByUserAndTarget(userID, model.TargetVideo, videoID)
	if err != nil {
		return nil, err
	}

	var newCount int64
	if existing != nil {
		if err := likes.Delete(existing.ID); err != nil {
			return nil, err
		}
		// 下限 0，兜底历史脏数据
		newCount = video.LikeCount - 1
		if newCount < 0 {
			newCount = 0
		}
	} else {
		if err := likes.Create(&model.Like{UserID: userID, VideoID: &videoID}); err != nil {
			return nil, err
		}
		newCount = video.LikeCount + 1
	}

	if err := videos.UpdateLikeCount(videoID, newCount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	return &infraKafka.EngagementEvent{
		TargetKind: string(model.TargetVideo),
		TargetID:   videoID,
		VideoID:    videoID,
		UserID:     userID,
		Liked:      existing == nil,
		LikeCount:  newCount,
		OccurredAt: time.Now().Unix(),
	}, nil
}

// toggleComment 在事务内切换评论点赞（调用方持有事务）
func (s *LikeService) toggleComment(tx *gorm.DB, userID, commentID int64) (*infraKafka.EngagementEvent, error) {
	comments := s.commentRepo.WithTx(tx)
	likes := s.likeRepo.WithTx(tx)

	comment, err := comments.GetByIDForUpdate(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	existing, err := likes.FindByUserAndTarget(userID, model.TargetComment, commentID)
	if err != nil {
		return nil, err
	}

	var newCount int64
	if existing != nil {
		if err := likes.Delete(existing.ID); err != nil {
			return nil, err
		}
		newCount = comment.LikeCount - 1
		if newCount < 0 {
			newCount = 0
		}
	} else {
		if err := likes.Create(&model.Like{UserID: userID, CommentID: &commentID}); err != nil {
			return nil, err
		}
		newCount = comment.LikeCount + 1
	}

	if err := comments.UpdateLikeCount(commentID, newCount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	return &infraKafka.EngagementEvent{
		TargetKind: string(model.TargetComment),
		TargetID:   commentID,
		VideoID:    comment.VideoID,
		UserID:     userID,
		Liked:      existing == nil,
		LikeCount:  newCount,
		OccurredAt: time.Now().Unix(),
	}, nil
}

// publish 切换提交后发布互动事件；失败只记日志，不影响已完成的切换
func (s *LikeService) publish(event *infraKafka.EngagementEvent) {
	if s.producer == nil || event == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.producer.PublishEngagement(ctx, event); err != nil {
		logger.Error("Publish engagement event failed",
			zap.String("target_kind", event.TargetKind),
			zap.Int64("target_id", event.TargetID),
			zap.Error(err),
		)
	}
}

// ListByUser 获取用户的点赞记录
func (s *LikeService) ListByUser(userID int64, page, pageSize int) ([]model.Like, int64, error) {
	skip := (page - 1) * pageSize
	return s.likeRepo.ListByUser(userID, skip, pageSize)
}
