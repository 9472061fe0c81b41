package dto

import "time"

// LikeInfo 点赞记录
type LikeInfo struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	TargetKind string    `json:"target_kind"`
	VideoID    *int64    `json:"video_id,omitempty"`
	CommentID  *int64    `json:"comment_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikeListData 点赞列表数据
type LikeListData struct {
	Likes      []LikeInfo `json:"likes"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
