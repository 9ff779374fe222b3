package models

import "time"

// 审计动作
const (
	ModActionBanUser       = "ban_user"
	ModActionUnbanUser     = "unban_user"
	ModActionRemovePost    = "remove_post"
	ModActionRemoveComment = "remove_comment"
	ModActionPinPost       = "pin_post"
	ModActionUnpinPost     = "unpin_post"
	ModActionLockPost      = "lock_post"
	ModActionUnlockPost    = "unlock_post"
	ModActionSetRole       = "set_role"
	ModActionRemoveMember  = "remove_member"
	ModActionResolveReport = "resolve_report"
	ModActionDismissReport = "dismiss_report"
)

// CommunityModLog 审计日志, 只追加, 永不修改或删除
type CommunityModLog struct {
	ID           uint64    `gorm:"column:id;primary_key" json:"id"`
	CommunityID  uint64    `gorm:"column:community_id;not null;index:idx_community_id" json:"community_id"`
	ModeratorID  uint64    `gorm:"column:moderator_id;not null" json:"moderator_id"`
	Action       string    `gorm:"column:action;type:varchar(32);not null" json:"action"`
	TargetUserID *uint64   `gorm:"column:target_user_id" json:"target_user_id,omitempty"`
	Reason       string    `gorm:"column:reason;type:varchar(500)" json:"reason,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;index:idx_created_at" json:"created_at"`
}

func (CommunityModLog) TableName() string { return "community_mod_logs" }
