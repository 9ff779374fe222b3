package models

import (
	"time"

	"gorm.io/datatypes"
)

// 帖子类型
const (
	PostText  int8 = 1
	PostLink  int8 = 2
	PostImage int8 = 3
	PostPoll  int8 = 4
	PostVideo int8 = 5
)

type Post struct {
	ID           uint64         `gorm:"column:id;primary_key" json:"id"`
	CommunityID  uint64         `gorm:"column:community_id;not null;index:idx_community_pinned" json:"community_id"`
	UserID       uint64         `gorm:"column:user_id;not null;index:idx_user_id" json:"user_id"`
	Title        string         `gorm:"column:title;type:varchar(300);not null" json:"title"`
	Type         int8           `gorm:"column:type;not null;default:1" json:"type"`
	Content      string         `gorm:"column:content;type:text" json:"content"`
	Payload      datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"` // 链接/图片/投票/视频的类型化负载
	Score        int64          `gorm:"column:score;not null;default:0" json:"score"`          // 投票净分, 冗余缓存, 真值在 votes 表
	HotRank      float64        `gorm:"column:hot_rank;not null;default:0;index:idx_hot_rank" json:"-"` // 热度排序键, 随 score 同事务更新
	CommentCount int64          `gorm:"column:comment_count;not null;default:0" json:"comment_count"`
	ViewCount    int64          `gorm:"column:view_count;not null;default:0" json:"view_count"`
	IsPinned     bool           `gorm:"column:is_pinned;not null;default:0;index:idx_community_pinned" json:"is_pinned"`
	IsLocked     bool           `gorm:"column:is_locked;not null;default:0" json:"is_locked"`
	IsDeleted    bool           `gorm:"column:is_deleted;not null;default:0" json:"is_deleted"` // 作者删除
	IsRemoved    bool           `gorm:"column:is_removed;not null;default:0" json:"is_removed"` // 版主移除
	CreatedAt    time.Time      `gorm:"column:created_at;index:idx_created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string {
	return "community_posts"
}

// Visible 帖子是否出现在信息流里; 被删除/移除的帖子仍可按ID直查
func (p *Post) Visible() bool {
	return !p.IsDeleted && !p.IsRemoved
}
