package dto

// SearchVideoRequest 搜索请求参数
type SearchVideoRequest struct {
	Keyword  string `form:"q" binding:"required,min=1,max=200"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
