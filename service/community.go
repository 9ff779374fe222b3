package service

import (
	"Agora/dao"
	"Agora/models"
	"Agora/pkg/response"
	"Agora/pkg/snowflake"
	"Agora/types"
	"context"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// slug 只允许 URL 安全字符
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

var _ ICommunityService = (*CommunityService)(nil)

type ICommunityService interface {
	CreateCommunity(ctx context.Context, userID uint64, req *types.CreateCommunityRequest) (*models.Community, error)
	GetCommunity(ctx context.Context, slug string, currentUserID uint64) (*types.CommunityDetail, error)
	UpdateCommunity(ctx context.Context, slug string, actorID uint64, req *types.UpdateCommunityRequest) error
	Join(ctx context.Context, slug string, userID uint64) error
	Leave(ctx context.Context, slug string, userID uint64) error
	ListMembers(ctx context.Context, slug string) ([]*types.MemberResponse, error)
	RemoveMember(ctx context.Context, slug string, actorID, targetID uint64) error
	SetRole(ctx context.Context, slug string, actorID, targetID uint64, role int8) error
	CreateFlair(ctx context.Context, slug string, actorID uint64, req *types.CreateFlairRequest) (*models.CommunityFlair, error)
	DeleteFlair(ctx context.Context, slug string, actorID, flairID uint64) error
	ListFlairs(ctx context.Context, slug string) ([]*models.CommunityFlair, error)
	CreateRule(ctx context.Context, slug string, actorID uint64, req *types.CreateRuleRequest) (*models.CommunityRule, error)
	UpdateRule(ctx context.Context, slug string, actorID, ruleID uint64, req *types.UpdateRuleRequest) error
	DeleteRule(ctx context.Context, slug string, actorID, ruleID uint64) error
	ListRules(ctx context.Context, slug string) ([]*models.CommunityRule, error)
	ResolveSlug(ctx context.Context, slug string) (*models.Community, error)
}

type CommunityService struct {
	DB           *gorm.DB
	CommunityDAO *dao.CommunityDAO
	MemberDAO    *dao.CommunityMemberDAO
	FlairDAO     *dao.FlairDAO
	RuleDAO      *dao.RuleDAO
	ModLogDAO    *dao.ModLogDAO
	Moderation   IModerationService
}

// CreateCommunity 建社区, 创建人自动成为 OWNER, 成员数从 1 起
func (s *CommunityService) CreateCommunity(ctx context.Context, userID uint64, req *types.CreateCommunityRequest) (*models.Community, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, response.Invalid("slug 只能使用小写字母、数字、连字符和下划线")
	}
	if s.CommunityDAO.IsSlugExist(ctx, req.Slug) {
		return nil, response.Conflict("slug 已被占用")
	}

	communityType := req.Type
	if communityType == 0 {
		communityType = models.CommunityPublic
	}

	now := time.Now()
	community := &models.Community{
		ID:          uint64(snowflake.GenID()),
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Type:        communityType,
		IsNsfw:      req.IsNsfw,
		MemberCount: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner := &models.CommunityMember{
		ID:          uint64(snowflake.GenID()),
		CommunityID: community.ID,
		UserID:      userID,
		Role:        models.RoleOwner,
		JoinedAt:    now,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Create(community).Error; e != nil {
			return e
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

// ResolveSlug slug 转社区, 不存在返回 NotFound
func (s *CommunityService) ResolveSlug(ctx context.Context, slug string) (*models.Community, error) {
	community, err := s.CommunityDAO.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, response.NotFound("社区不存在")
	}
	return community, nil
}

// GetCommunity 社区详情, 附带当前用户的成员状态
func (s *CommunityService) GetCommunity(ctx context.Context, slug string, currentUserID uint64) (*types.CommunityDetail, error) {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &types.CommunityDetail{Community: community}
	if currentUserID > 0 {
		role, err := s.MemberDAO.GetRole(ctx, community.ID, currentUserID)
		if err != nil {
			return nil, err
		}
		detail.MyRole = role
		detail.IsJoined = role > 0
	}
	return detail, nil
}

// UpdateCommunity 社区设置, 版主及以上
func (s *CommunityService) UpdateCommunity(ctx context.Context, slug string, actorID uint64, req *types.UpdateCommunityRequest) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleModerator); err != nil {
		return err
	}

	data := make(map[string]any)
	if req.Name != nil {
		data["name"] = *req.Name
	}
	if req.Description != nil {
		data["description"] = *req.Description
	}
	if req.Type != nil {
		data["type"] = *req.Type
	}
	if req.IsNsfw != nil {
		data["is_nsfw"] = *req.IsNsfw
	}
	return s.CommunityDAO.UpdateByID(ctx, community.ID, data)
}

// Join 加入社区, 私密社区不开放自助加入
func (s *CommunityService) Join(ctx context.Context, slug string, userID uint64) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if community.Type == models.CommunityPrivate {
		return response.Forbidden("私密社区需要邀请")
	}

	existing, err := s.MemberDAO.GetMember(ctx, community.ID, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return response.Conflict("已是社区成员")
	}

	member := &models.CommunityMember{
		ID:          uint64(snowflake.GenID()),
		CommunityID: community.ID,
		UserID:      userID,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Create(member).Error; e != nil {
			return e
		}
		return tx.Model(&models.Community{}).
			Where("id = ?", community.ID).
			UpdateColumn("member_count", gorm.Expr("member_count + 1")).Error
	})
}

// Leave 退出社区, 社区主不能退出(所有权不在本子系统内转移)
func (s *CommunityService) Leave(ctx context.Context, slug string, userID uint64) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}

	member, err := s.MemberDAO.GetMember(ctx, community.ID, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return response.Conflict("不是社区成员")
	}
	if member.Role == models.RoleOwner {
		return response.Conflict("社区主不能退出社区")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Where("community_id = ? AND user_id = ?", community.ID, userID).
			Delete(&models.CommunityMember{}).Error; e != nil {
			return e
		}
		return tx.Model(&models.Community{}).
			Where("id = ?", community.ID).
			UpdateColumn("member_count", gorm.Expr("GREATEST(member_count - 1, 0)")).Error
	})
}

func (s *CommunityService) ListMembers(ctx context.Context, slug string) ([]*types.MemberResponse, error) {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	members, err := s.MemberDAO.FindAllByWhere(ctx, "community_id = ?", community.ID)
	if err != nil {
		return nil, err
	}

	result := make([]*types.MemberResponse, 0, len(members))
	for _, m := range members {
		result = append(result, &types.MemberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return result, nil
}

// RemoveMember 移除成员, 要求操作者角色严格高于目标, OWNER 永不可移除
// 历史帖子评论按 user_id 归属, 不随成员关系删除
func (s *CommunityService) RemoveMember(ctx context.Context, slug string, actorID, targetID uint64) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}

	actorRole, err := s.MemberDAO.GetRole(ctx, community.ID, actorID)
	if err != nil {
		return err
	}
	if !models.RoleAtLeast(actorRole, models.RoleModerator) {
		return response.Forbidden("没有操作权限")
	}

	target, err := s.MemberDAO.GetMember(ctx, community.ID, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return response.NotFound("该用户不是社区成员")
	}
	if target.Role == models.RoleOwner {
		return response.Conflict("不能移除社区主")
	}
	if target.Role >= actorRole {
		return response.Forbidden("不能移除同级或更高角色的成员")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Where("community_id = ? AND user_id = ?", community.ID, targetID).
			Delete(&models.CommunityMember{}).Error; e != nil {
			return e
		}
		if e := tx.Model(&models.Community{}).
			Where("id = ?", community.ID).
			UpdateColumn("member_count", gorm.Expr("GREATEST(member_count - 1, 0)")).Error; e != nil {
			return e
		}

		entry := &models.CommunityModLog{
			ID:           uint64(snowflake.GenID()),
			CommunityID:  community.ID,
			ModeratorID:  actorID,
			Action:       models.ModActionRemoveMember,
			TargetUserID: &targetID,
			CreatedAt:    time.Now(),
		}
		return tx.Create(entry).Error
	})
}

// SetRole 角色调整, 仅 OWNER, 只能在 MEMBER/MODERATOR 之间流转
func (s *CommunityService) SetRole(ctx context.Context, slug string, actorID, targetID uint64, role int8) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleOwner); err != nil {
		return err
	}
	if role != models.RoleMember && role != models.RoleModerator {
		return response.Invalid("角色只能是成员或版主")
	}

	target, err := s.MemberDAO.GetMember(ctx, community.ID, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return response.NotFound("该用户不是社区成员")
	}
	if target.Role == models.RoleOwner {
		return response.Conflict("不能变更社区主角色")
	}
	if target.Role == role {
		return response.Conflict("角色没有变化")
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(&models.CommunityMember{}).
			Where("community_id = ? AND user_id = ?", community.ID, targetID).
			Update("role", role).Error; e != nil {
			return e
		}

		entry := &models.CommunityModLog{
			ID:           uint64(snowflake.GenID()),
			CommunityID:  community.ID,
			ModeratorID:  actorID,
			Action:       models.ModActionSetRole,
			TargetUserID: &targetID,
			CreatedAt:    time.Now(),
		}
		return tx.Create(entry).Error
	})
}

// CreateFlair 标签, 社区主维护
func (s *CommunityService) CreateFlair(ctx context.Context, slug string, actorID uint64, req *types.CreateFlairRequest) (*models.CommunityFlair, error) {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleOwner); err != nil {
		return nil, err
	}

	flair := &models.CommunityFlair{
		ID:          uint64(snowflake.GenID()),
		CommunityID: community.ID,
		Label:       req.Label,
		Color:       req.Color,
		CreatedAt:   time.Now(),
	}
	if err := s.FlairDAO.Create(ctx, flair); err != nil {
		return nil, err
	}
	return flair, nil
}

func (s *CommunityService) DeleteFlair(ctx context.Context, slug string, actorID, flairID uint64) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleOwner); err != nil {
		return err
	}
	return s.FlairDAO.Delete(ctx, community.ID, flairID)
}

func (s *CommunityService) ListFlairs(ctx context.Context, slug string) ([]*models.CommunityFlair, error) {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.FlairDAO.ListByCommunity(ctx, community.ID)
}

// CreateRule 社区规则, 社区主维护
func (s *CommunityService) CreateRule(ctx context.Context, slug string, actorID uint64, req *types.CreateRuleRequest) (*models.CommunityRule, error) {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleOwner); err != nil {
		return nil, err
	}

	rule := &models.CommunityRule{
		ID:          uint64(snowflake.GenID()),
		CommunityID: community.ID,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.RuleDAO.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *CommunityService) UpdateRule(ctx context.Context, slug string, actorID, ruleID uint64, req *types.UpdateRuleRequest) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleOwner); err != nil {
		return err
	}

	data := make(map[string]any)
	if req.Title != nil {
		data["title"] = *req.Title
	}
	if req.Description != nil {
		data["description"] = *req.Description
	}
	if req.SortOrder != nil {
		data["sort_order"] = *req.SortOrder
	}
	return s.RuleDAO.UpdateByID(ctx, community.ID, ruleID, data)
}

func (s *CommunityService) DeleteRule(ctx context.Context, slug string, actorID, ruleID uint64) error {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.Moderation.RequireRole(ctx, community.ID, actorID, models.RoleOwner); err != nil {
		return err
	}
	return s.RuleDAO.Delete(ctx, community.ID, ruleID)
}

func (s *CommunityService) ListRules(ctx context.Context, slug string) ([]*models.CommunityRule, error) {
	community, err := s.ResolveSlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.RuleDAO.ListByCommunity(ctx, community.ID)
}
