package model

import "time"

// Video 视频模型
// LikeCount 为反范式化计数，只能由点赞切换引擎写入（见 service.LikeService）
type Video struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:视频标识" json:"id"`
	OwnerID   int64     `gorm:"not null;index:idx_videos_owner_id;comment:视频作者ID" json:"owner_id"`
	Title     string    `gorm:"size:200;not null;comment:视频标题" json:"title"`
	PlayURL   string    `gorm:"size:500;not null;comment:视频存储地址" json:"play_url"`
	Tags      *string   `gorm:"size:255;comment:标签" json:"tags"`
	LikeCount int64     `gorm:"not null;default:0;comment:点赞数" json:"like_count"`
	Edited    bool      `gorm:"not null;default:false;comment:是否编辑过" json:"edited"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_videos_created_at;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系：删除视频级联删除其评论和点赞
	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Comments []Comment `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
