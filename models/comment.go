package models

import (
	"time"
)

// Comment 评论表结构, parent_id=0 表示顶级评论
type Comment struct {
	ID        uint64     `gorm:"column:id;primary_key" json:"id"`
	PostID    uint64     `gorm:"column:post_id;not null;index:idx_post_id" json:"post_id"`
	UserID    uint64     `gorm:"column:user_id;not null;index:idx_user_id" json:"user_id"`
	ParentID  uint64     `gorm:"column:parent_id;not null;default:0;index:idx_parent_id" json:"parent_id"`
	Content   string     `gorm:"column:content;type:text;not null" json:"content"`
	Score     int64      `gorm:"column:score;not null;default:0" json:"score"` // 投票净分, 冗余缓存
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:0" json:"is_deleted"` // 作者删除, 墓碑, 子树保留
	IsRemoved bool       `gorm:"column:is_removed;not null;default:0" json:"is_removed"` // 版主移除, 整棵子树不再展示
	EditedAt  *time.Time `gorm:"column:edited_at" json:"edited_at,omitempty"`            // 首次编辑后置位, 只更新不清除
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string {
	return "community_comments"
}
