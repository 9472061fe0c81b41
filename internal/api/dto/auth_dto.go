package dto

import "time"

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string     `json:"username" binding:"required,min=1,max=255"`
	Email     string     `json:"email" binding:"required,email,max=255"`
	Password  string     `json:"password" binding:"required,min=6,max=255"`
	FirstName string     `json:"first_name" binding:"required,min=1,max=255"`
	LastName  string     `json:"last_name" binding:"required,min=1,max=255"`
	Bio       *string    `json:"bio" binding:"omitempty,max=1000"`
	BirthDate *time.Time `json:"birth_date"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=255"`
}

// TokenData 登录成功返回的 Token 信息
type TokenData struct {
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	User      UserInfo `json:"user"`
}

// UserInfo 用户公开信息（不含密码）
type UserInfo struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       *string    `json:"bio"`
	BirthDate *time.Time `json:"birth_date"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}
