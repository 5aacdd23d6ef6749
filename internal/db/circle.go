package db

import "gorm.io/gorm"

// 圈子成员角色
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// SupportCircle 互助圈子，由某个用户创建
type SupportCircle struct {
	gorm.Model
	Name      string `gorm:"not null"`
	CreatedBy uint   `gorm:"index;not null"`
}

// CircleMember 圈子成员关系
// CircleID + UserID 唯一，避免重复加入
type CircleMember struct {
	gorm.Model
	CircleID uint   `gorm:"index;index:idx_circle_member_unique,unique"`
	UserID   uint   `gorm:"index:idx_circle_member_unique,unique"`
	Role     string `gorm:"default:MEMBER"`
}

// EncouragementMessage 圈内鼓励留言
type EncouragementMessage struct {
	gorm.Model
	CircleID   uint   `gorm:"index;not null"`
	SenderID   uint   `gorm:"not null"`
	ReceiverID uint   `gorm:"not null"`
	Message    string `gorm:"type:text;not null"`
}
