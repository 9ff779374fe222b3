package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type CommunityDAO struct {
	Repo[models.Community]
}

func NewCommunityDAO(db *gorm.DB) *CommunityDAO {
	return &CommunityDAO{Repo: NewRepo[models.Community](db)}
}

// FindBySlug slug 查询
func (d *CommunityDAO) FindBySlug(ctx context.Context, slug string) (*models.Community, error) {
	return d.Repo.FindByWhere(ctx, "slug = ?", slug)
}

// IsSlugExist 判断 slug 是否被占用
func (d *CommunityDAO) IsSlugExist(ctx context.Context, slug string) bool {
	exist, _ := d.Repo.IsExist(ctx, "slug = ?", slug)
	return exist
}

// UpdateByID 更新社区设置
func (d *CommunityDAO) UpdateByID(ctx context.Context, communityID uint64, data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.Community{}).
		Where("id = ?", communityID).
		Updates(data).Error
}

// IncrMemberCount 成员计数增减
func (d *CommunityDAO) IncrMemberCount(ctx context.Context, communityID uint64, delta int) error {
	return d.Db.WithContext(ctx).
		Model(&models.Community{}).
		Where("id = ?", communityID).
		UpdateColumn("member_count", gorm.Expr("GREATEST(member_count + ?, 0)", delta)).
		Error
}

// IncrPostCount 帖子计数增减
func (d *CommunityDAO) IncrPostCount(ctx context.Context, communityID uint64, delta int) error {
	return d.Db.WithContext(ctx).
		Model(&models.Community{}).
		Where("id = ?", communityID).
		UpdateColumn("post_count", gorm.Expr("GREATEST(post_count + ?, 0)", delta)).
		Error
}
