package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type BanDAO struct {
	Repo[models.CommunityBan]
}

func NewBanDAO(db *gorm.DB) *BanDAO {
	return &BanDAO{Repo: NewRepo[models.CommunityBan](db)}
}

// GetActive 查询用户在社区的生效封禁, 没有返回 nil
func (d *BanDAO) GetActive(ctx context.Context, communityID, userID uint64) (*models.CommunityBan, error) {
	return d.Repo.FindByWhere(ctx,
		"community_id = ? AND user_id = ? AND status = ?",
		communityID, userID, models.BanActive)
}

// ListByCommunity 社区封禁列表
func (d *BanDAO) ListByCommunity(ctx context.Context, communityID uint64, status int8) ([]*models.CommunityBan, error) {
	var bans []*models.CommunityBan
	query := d.Db.WithContext(ctx).Where("community_id = ?", communityID)
	if status >= 0 {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&bans).Error
	return bans, err
}

// ExpireDue 把到期的封禁批量置为 EXPIRED, 返回影响行数
func (d *BanDAO) ExpireDue(ctx context.Context) (int64, error) {
	result := d.Db.WithContext(ctx).
		Model(&models.CommunityBan{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= NOW()", models.BanActive).
		Update("status", models.BanExpired)
	return result.RowsAffected, result.Error
}
