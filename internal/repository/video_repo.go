package repository

import (
	"github.com/jgouvea7/streaming-social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// WithTx 返回绑定到事务的仓库实例
func (r *VideoRepository) WithTx(tx *gorm.DB) *VideoRepository {
	return &VideoRepository{db: tx}
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息，权限校验用）
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Preload("Owner").Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDForUpdate 加行锁读取视频（必须在事务内调用）
// 用于点赞切换的临界区：同一视频的并发切换在此串行化
func (r *VideoRepository) GetByIDForUpdate(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// UpdateLikeCount 写入反范式化点赞数
// 仅供点赞切换引擎使用；目标在读取后被删除时返回 ErrRecordNotFound
func (r *VideoRepository) UpdateLikeCount(id, likeCount int64) error {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("like_count", likeCount)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除视频（数据库级联删除其评论和点赞）
func (r *VideoRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 视频列表查询（分页，可选按作者筛选）
func (r *VideoRepository) List(skip, limit int, ownerID *int64) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListAll 获取全部视频（推荐流水线用，不分页）
func (r *VideoRepository) ListAll() ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Order("created_at DESC").Find(&videos).Error
	return videos, err
}

// Search 标题/标签模糊搜索（ES 不可用时的降级路径）
func (r *VideoRepository) Search(keyword string, skip, limit int) ([]model.Video, int64, error) {
	pattern := "%" + keyword + "%"
	query := r.db.Model(&model.Video{}).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(tags) LIKE LOWER(?)", pattern, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Order("created_at DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// CountComments 统计视频的评论数（推荐评分输入、索引文档用）
func (r *VideoRepository) CountComments(videoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// CommentCounts 按视频分组统计评论数（推荐流水线一次取全量）
func (r *VideoRepository) CommentCounts() (map[int64]int64, error) {
	type row struct {
		VideoID int64
		Count   int64
	}

	var rows []row
	err := r.db.Model(&model.Comment{}).
		Select("video_id, COUNT(*) AS count").
		Group("video_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, rr := range rows {
		counts[rr.VideoID] = rr.Count
	}
	return counts, nil
}
