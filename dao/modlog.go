package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type ModLogDAO struct {
	Repo[models.CommunityModLog]
}

func NewModLogDAO(db *gorm.DB) *ModLogDAO {
	return &ModLogDAO{Repo: NewRepo[models.CommunityModLog](db)}
}

// 审计日志只追加, 这个DAO不提供任何更新和删除

// Append 追加一条审计记录
func (d *ModLogDAO) Append(ctx context.Context, entry *models.CommunityModLog) error {
	return d.Db.WithContext(ctx).Create(entry).Error
}

// ListByCommunity 审计日志列表, 按时间倒序
func (d *ModLogDAO) ListByCommunity(ctx context.Context, communityID uint64, limit, offset int) ([]*models.CommunityModLog, error) {
	var entries []*models.CommunityModLog
	err := d.Db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}
