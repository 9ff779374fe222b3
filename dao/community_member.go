package dao

import (
	"Agora/models"
	"context"

	"gorm.io/gorm"
)

type CommunityMemberDAO struct {
	Repo[models.CommunityMember]
}

func NewCommunityMemberDAO(db *gorm.DB) *CommunityMemberDAO {
	return &CommunityMemberDAO{Repo: NewRepo[models.CommunityMember](db)}
}

// GetMember 查询成员记录, 非成员返回 nil
func (d *CommunityMemberDAO) GetMember(ctx context.Context, communityID, userID uint64) (*models.CommunityMember, error) {
	return d.Repo.FindByWhere(ctx, "community_id = ? AND user_id = ?", communityID, userID)
}

// GetRole 查询成员角色, 非成员返回 0
func (d *CommunityMemberDAO) GetRole(ctx context.Context, communityID, userID uint64) (int8, error) {
	member, err := d.GetMember(ctx, communityID, userID)
	if err != nil {
		return 0, err
	}
	if member == nil {
		return 0, nil
	}
	return member.Role, nil
}

// UpdateRole 变更成员角色
func (d *CommunityMemberDAO) UpdateRole(ctx context.Context, communityID, userID uint64, role int8) error {
	return d.Db.WithContext(ctx).
		Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Update("role", role).Error
}

// Delete 删除成员记录, 历史帖子评论按 user_id 归属不受影响
func (d *CommunityMemberDAO) Delete(ctx context.Context, communityID, userID uint64) error {
	return d.Db.WithContext(ctx).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&models.CommunityMember{}).Error
}

// ListCommunityIDs 用户加入的社区ID列表(home 信息流范围)
func (d *CommunityMemberDAO) ListCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).
		Model(&models.CommunityMember{}).
		Where("user_id = ?", userID).
		Pluck("community_id", &ids).Error
	return ids, err
}
