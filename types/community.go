package types

import (
	"Agora/models"
	"time"
)

type CreateCommunityRequest struct {
	Slug        string `json:"slug" binding:"required,max=64"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Type        int8   `json:"type" binding:"omitempty,oneof=1 2 3"`
	IsNsfw      bool   `json:"is_nsfw"`
}

type UpdateCommunityRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Type        *int8   `json:"type" binding:"omitempty,oneof=1 2 3"`
	IsNsfw      *bool   `json:"is_nsfw"`
}

// CommunityDetail 社区详情, 附带当前用户的成员状态
type CommunityDetail struct {
	*models.Community
	IsJoined bool `json:"is_joined"`
	MyRole   int8 `json:"my_role"` // 0 表示非成员
}

type SetRoleRequest struct {
	Role int8 `json:"role" binding:"required,oneof=1 2"` // 只能在 MEMBER/MODERATOR 之间调整
}

type CreateFlairRequest struct {
	Label string `json:"label" binding:"required,max=64"`
	Color string `json:"color" binding:"omitempty,max=16"`
}

type CreateRuleRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateRuleRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
}

type MemberResponse struct {
	UserID   uint64    `json:"user_id"`
	Role     int8      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
