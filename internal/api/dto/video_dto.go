package dto

import "time"

// VideoUploadRequest 视频上传请求（multipart/form-data 或 JSON）
type VideoUploadRequest struct {
	Title string  `form:"title" json:"title" binding:"required,min=1,max=200"`
	Tags  *string `form:"tags" json:"tags" binding:"omitempty,max=500"`
}

// VideoUpdateRequest 视频更新请求
// 点赞数不可通过更新接口写入，只能由点赞切换维护
type VideoUpdateRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=200"`
	Tags  *string `json:"tags" binding:"omitempty,max=500"`
}

// VideoInfo 视频详情
type VideoInfo struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	PlayURL   string    `json:"play_url"`
	Tags      *string   `json:"tags"`
	LikeCount int64     `json:"like_count"`
	Edited    bool      `json:"edited"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos     []VideoInfo `json:"videos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
}
