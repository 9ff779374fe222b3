package models

import "time"

// SavedPost 用户收藏的帖子
// 唯一键: user_id + post_id
type SavedPost struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:uk_user_post,unique,priority:1" json:"user_id"`
	PostID    uint64    `gorm:"column:post_id;not null;index:uk_user_post,unique,priority:2" json:"post_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SavedPost) TableName() string { return "saved_posts" }
