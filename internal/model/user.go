package model

import "time"

// User 用户模型
type User struct {
	ID        int64      `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username  string     `gorm:"size:50;not null;uniqueIndex;comment:用户名" json:"username"`
	Email     string     `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	Password  string     `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	FirstName string     `gorm:"size:50;not null;comment:名" json:"first_name"`
	LastName  string     `gorm:"size:50;not null;comment:姓" json:"last_name"`
	Bio       *string    `gorm:"type:text;comment:个人简介" json:"bio"`
	BirthDate *time.Time `gorm:"comment:出生日期" json:"birth_date"`
	Role      string     `gorm:"size:20;not null;default:'user';comment:角色 user|admin" json:"role"`
	CreatedAt time.Time  `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系：删除用户级联删除其视频/评论/点赞
	Videos   []Video   `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"videos,omitempty"`
	Comments []Comment `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (User) TableName() string {
	return "users"
}
