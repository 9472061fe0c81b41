package repository

import (
	"errors"

	"github.com/jgouvea7/streaming-social/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// WithTx 返回绑定到事务的仓库实例
func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository {
	return &LikeRepository{db: tx}
}

// FindByUserAndTarget 查找 (用户, 目标) 的点赞边；不存在时返回 (nil, nil)
func (r *LikeRepository) FindByUserAndTarget(userID int64, kind model.TargetKind, targetID int64) (*model.Like, error) {
	query := r.db.Where("user_id = ?", userID)
	switch kind {
	case model.TargetVideo:
		query = query.Where("video_id = ?", targetID)
	case model.TargetComment:
		query = query.Where("comment_id = ?", targetID)
	}

	var like model.Like
	if err := query.First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// Create 创建点赞边
func (r *LikeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

// Delete 删除点赞边
func (r *LikeRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Like{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByTarget 统计目标的点赞边数量（审计/测试用，不参与读路径）
func (r *LikeRepository) CountByTarget(kind model.TargetKind, targetID int64) (int64, error) {
	query := r.db.Model(&model.Like{})
	switch kind {
	case model.TargetVideo:
		query = query.Where("video_id = ?", targetID)
	case model.TargetComment:
		query = query.Where("comment_id = ?", targetID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// ListByUser 获取用户的点赞列表
func (r *LikeRepository) ListByUser(userID int64, skip, limit int) ([]model.Like, int64, error) {
	query := r.db.Model(&model.Like{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}
