package model

import "time"

// Comment 评论模型
// LikeCount 同样为反范式化计数，仅由点赞切换引擎更新
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	OwnerID   int64     `gorm:"not null;index:idx_comments_owner_id;comment:评论用户ID" json:"owner_id"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_id;comment:所属视频ID" json:"video_id"`
	Content   string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	LikeCount int64     `gorm:"not null;default:0;comment:点赞数" json:"like_count"`
	Edited    bool      `gorm:"not null;default:false;comment:是否编辑过" json:"edited"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_created_at;comment:评论时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系：删除评论级联删除其点赞
	Owner User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Video Video  `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	Likes []Like `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
