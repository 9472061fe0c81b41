package model

import "time"

// TargetKind 点赞目标类型（视频或评论）
type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
)

// Valid 目标类型是否合法
func (k TargetKind) Valid() bool {
	return k == TargetVideo || k == TargetComment
}

// Like 点赞记录：一个用户对一个目标（视频或评论，二选一）的一条边
//
// 约束在存储层收口：
//   - CHECK 保证 video_id / comment_id 恰好一个非空；
//   - (user_id, video_id) 与 (user_id, comment_id) 唯一索引保证
//     同一用户对同一目标最多存在一条点赞记录（NULL 互不冲突）。
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_like_user_video;uniqueIndex:uq_like_user_comment;index:idx_likes_user_id;comment:点赞用户ID" json:"user_id"`
	VideoID   *int64    `gorm:"uniqueIndex:uq_like_user_video;index:idx_likes_video_id;check:chk_likes_one_target,(video_id IS NULL) <> (comment_id IS NULL);comment:被点赞视频ID" json:"video_id"`
	CommentID *int64    `gorm:"uniqueIndex:uq_like_user_comment;index:idx_likes_comment_id;comment:被点赞评论ID" json:"comment_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`

	// 关联关系
	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video   *Video   `gorm:"foreignKey:VideoID" json:"video,omitempty"`
	Comment *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}

// Kind 返回该记录指向的目标类型
func (l *Like) Kind() TargetKind {
	if l.VideoID != nil {
		return TargetVideo
	}
	return TargetComment
}
