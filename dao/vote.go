package dao

import (
	"Agora/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type VoteDAO struct {
	Repo[models.Vote]
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{Repo: NewRepo[models.Vote](db)}
}

// GetByUserTarget 查询用户对目标的投票记录, 没有投过返回 nil
func (d *VoteDAO) GetByUserTarget(ctx context.Context, userID uint64, targetType int8, targetID uint64) (*models.Vote, error) {
	var item models.Vote
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// BatchGetByUser 批量查询用户对一批目标的投票, 信息流叠加"我的投票"用
func (d *VoteDAO) BatchGetByUser(ctx context.Context, userID uint64, targetType int8, targetIDs []uint64) (map[uint64]int8, error) {
	result := make(map[uint64]int8)
	if len(targetIDs) == 0 {
		return result, nil
	}

	var votes []*models.Vote
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	for _, v := range votes {
		result[v.TargetID] = v.Value
	}

	return result, nil
}

// SumByTarget 从投票账本重算目标净分, 对账真值
func (d *VoteDAO) SumByTarget(ctx context.Context, targetType int8, targetID uint64) (int64, error) {
	var sum *int64
	err := d.Db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("SUM(value)").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
