package models

import "time"

// 举报状态, RESOLVED/DISMISSED 为终态
const (
	ReportOpen      int8 = 1
	ReportResolved  int8 = 2
	ReportDismissed int8 = 3
)

// CommunityReport 内容举报, post_id 和 comment_id 有且只有一个非空
type CommunityReport struct {
	ID          uint64    `gorm:"column:id;primary_key" json:"id"`
	CommunityID uint64    `gorm:"column:community_id;not null;index:idx_community_status,priority:1" json:"community_id"`
	ReporterID  uint64    `gorm:"column:reporter_id;not null" json:"reporter_id"`
	PostID      *uint64   `gorm:"column:post_id;index:idx_post_id" json:"post_id,omitempty"`
	CommentID   *uint64   `gorm:"column:comment_id;index:idx_comment_id" json:"comment_id,omitempty"`
	Reason      string    `gorm:"column:reason;type:varchar(500);not null" json:"reason"`
	Status      int8      `gorm:"column:status;not null;default:1;index:idx_community_status,priority:2" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CommunityReport) TableName() string { return "community_reports" }
