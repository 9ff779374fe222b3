package models

import (
	"time"
)

// 社区类型
const (
	CommunityPublic     int8 = 1 // 公开
	CommunityRestricted int8 = 2 // 受限(可读, 发帖需审批加入)
	CommunityPrivate    int8 = 3 // 私密
)

type Community struct {
	ID          uint64    `gorm:"column:id;primary_key" json:"id"`
	Slug        string    `gorm:"column:slug;type:varchar(64);not null;uniqueIndex:uk_slug" json:"slug"`
	Name        string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Type        int8      `gorm:"column:type;not null;default:1" json:"type"`
	IsNsfw      bool      `gorm:"column:is_nsfw;not null;default:0" json:"is_nsfw"`
	MemberCount int64     `gorm:"column:member_count;not null;default:0" json:"member_count"` // 冗余计数
	PostCount   int64     `gorm:"column:post_count;not null;default:0" json:"post_count"`     // 冗余计数
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Community) TableName() string {
	return "communities"
}

// 成员角色, 数值即权限序: OWNER > MODERATOR > MEMBER
const (
	RoleMember    int8 = 1
	RoleModerator int8 = 2
	RoleOwner     int8 = 3
)

// RoleAtLeast 权限判定统一走这一个比较, 不做角色分支
func RoleAtLeast(role, required int8) bool {
	return role >= required
}

// CommunityMember 社区成员, (community_id, user_id) 唯一
type CommunityMember struct {
	ID          uint64    `gorm:"column:id;primary_key" json:"id"`
	CommunityID uint64    `gorm:"column:community_id;not null;index:uk_community_user,unique,priority:1" json:"community_id"`
	UserID      uint64    `gorm:"column:user_id;not null;index:uk_community_user,unique,priority:2" json:"user_id"`
	Role        int8      `gorm:"column:role;not null;default:1" json:"role"`
	JoinedAt    time.Time `gorm:"column:joined_at" json:"joined_at"`
}

func (CommunityMember) TableName() string {
	return "community_members"
}
