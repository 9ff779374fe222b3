package models

import "time"

// 投票目标类型
const (
	VoteTargetPost    int8 = 1
	VoteTargetComment int8 = 2
)

// 投票方向; 取消投票直接删行, 不存中性值
const (
	VoteUp   int8 = 1
	VoteDown int8 = -1
	VoteNone int8 = 0
)

// Vote 投票记录
// 唯一键: user_id + target_type + target_id, 一人一票
type Vote struct {
	ID         uint64    `gorm:"column:id;primary_key" json:"id"`
	UserID     uint64    `gorm:"column:user_id;not null;index:uk_user_target,unique,priority:1" json:"user_id"`
	TargetType int8      `gorm:"column:target_type;not null;index:uk_user_target,unique,priority:2" json:"target_type"`
	TargetID   uint64    `gorm:"column:target_id;not null;index:uk_user_target,unique,priority:3;index:idx_target_id" json:"target_id"`
	Value      int8      `gorm:"column:value;not null" json:"value"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Vote) TableName() string { return "votes" }
