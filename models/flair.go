package models

import "time"

// CommunityFlair 帖子标签, 社区主自维护
type CommunityFlair struct {
	ID          uint64    `gorm:"column:id;primary_key" json:"id"`
	CommunityID uint64    `gorm:"column:community_id;not null;index:idx_community_id" json:"community_id"`
	Label       string    `gorm:"column:label;type:varchar(64);not null" json:"label"`
	Color       string    `gorm:"column:color;type:varchar(16)" json:"color"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CommunityFlair) TableName() string { return "community_flairs" }

// CommunityRule 社区规则, 按 sort_order 展示
type CommunityRule struct {
	ID          uint64    `gorm:"column:id;primary_key" json:"id"`
	CommunityID uint64    `gorm:"column:community_id;not null;index:idx_community_id" json:"community_id"`
	Title       string    `gorm:"column:title;type:varchar(100);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CommunityRule) TableName() string { return "community_rules" }
