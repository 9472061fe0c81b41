package dto

// UserUpdateRequest 用户信息更新请求
type UserUpdateRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=1,max=255"`
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=255"`
	Bio       *string `json:"bio" binding:"omitempty,max=1000"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// UserListData 用户列表数据
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
