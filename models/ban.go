package models

import "time"

// 封禁状态
const (
	BanExpired int8 = 0
	BanActive  int8 = 1
)

// CommunityBan 社区封禁记录
// expires_at 为空表示永久封禁; 封禁不影响读
type CommunityBan struct {
	ID          uint64     `gorm:"column:id;primary_key" json:"id"`
	CommunityID uint64     `gorm:"column:community_id;not null;index:idx_community_user,priority:1" json:"community_id"`
	UserID      uint64     `gorm:"column:user_id;not null;index:idx_community_user,priority:2" json:"user_id"`
	Reason      string     `gorm:"column:reason;type:varchar(500)" json:"reason"`
	Status      int8       `gorm:"column:status;not null;default:1" json:"status"`
	BannedByID  uint64     `gorm:"column:banned_by_id;not null" json:"banned_by_id"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (CommunityBan) TableName() string { return "community_bans" }

// Blocking 该记录当前是否阻断写操作
// 标记过期依赖维护任务, 这里按时间实际判断, 避免边界上放行
func (b *CommunityBan) Blocking(now time.Time) bool {
	if b.Status != BanActive {
		return false
	}
	if b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
		return false
	}
	return true
}
