package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type ReportDAO struct {
	Repo[models.CommunityReport]
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{Repo: NewRepo[models.CommunityReport](db)}
}

// Create 创建举报
func (d *ReportDAO) Create(ctx context.Context, report *models.CommunityReport) error {
	return d.Db.WithContext(ctx).Create(report).Error
}

// ListByCommunity 举报列表, status < 0 表示不过滤状态
func (d *ReportDAO) ListByCommunity(ctx context.Context, communityID uint64, status int8) ([]*models.CommunityReport, error) {
	var reports []*models.CommunityReport
	query := d.Db.WithContext(ctx).Where("community_id = ?", communityID)
	if status >= 0 {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&reports).Error
	return reports, err
}
