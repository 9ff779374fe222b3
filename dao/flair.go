package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type FlairDAO struct {
	Repo[models.CommunityFlair]
}

func NewFlairDAO(db *gorm.DB) *FlairDAO {
	return &FlairDAO{Repo: NewRepo[models.CommunityFlair](db)}
}

func (d *FlairDAO) ListByCommunity(ctx context.Context, communityID uint64) ([]*models.CommunityFlair, error) {
	return d.Repo.FindAllByWhere(ctx, "community_id = ?", communityID)
}

func (d *FlairDAO) Delete(ctx context.Context, communityID, flairID uint64) error {
	return d.Db.WithContext(ctx).
		Where("id = ? AND community_id = ?", flairID, communityID).
		Delete(&models.CommunityFlair{}).Error
}

type RuleDAO struct {
	Repo[models.CommunityRule]
}

func NewRuleDAO(db *gorm.DB) *RuleDAO {
	return &RuleDAO{Repo: NewRepo[models.CommunityRule](db)}
}

// ListByCommunity 规则按 sort_order 排列
func (d *RuleDAO) ListByCommunity(ctx context.Context, communityID uint64) ([]*models.CommunityRule, error) {
	var rules []*models.CommunityRule
	err := d.Db.WithContext(ctx).
		Where("community_id = ?", communityID).
		Order("sort_order ASC, id ASC").
		Find(&rules).Error
	return rules, err
}

func (d *RuleDAO) UpdateByID(ctx context.Context, communityID, ruleID uint64, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.CommunityRule{}).
		Where("id = ? AND community_id = ?", ruleID, communityID).
		Updates(data).Error
}

func (d *RuleDAO) Delete(ctx context.Context, communityID, ruleID uint64) error {
	return d.Db.WithContext(ctx).
		Where("id = ? AND community_id = ?", ruleID, communityID).
		Delete(&models.CommunityRule{}).Error
}
