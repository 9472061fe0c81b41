package repository

import (
	"github.com/jgouvea7/streaming-social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// WithTx 返回绑定到事务的仓库实例
func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{db: tx}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDWithOwner 根据 ID 获取评论（含作者信息，权限校验用）
func (r *CommentRepository) GetByIDWithOwner(id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Preload("Owner").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByIDForUpdate 加行锁读取评论（必须在事务内调用）
func (r *CommentRepository) GetByIDForUpdate(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update 更新评论字段
func (r *CommentRepository) Update(id int64, updates map[string]interface{}) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// UpdateLikeCount 写入反范式化点赞数（仅供点赞切换引擎使用）
func (r *CommentRepository) UpdateLikeCount(id, likeCount int64) error {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn("like_count", likeCount)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除评论（数据库级联删除其点赞）
func (r *CommentRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByVideo 获取视频的评论列表
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Owner").Order("created_at DESC").Offset(skip).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}
