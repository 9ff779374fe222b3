package service

import (
	"Agora/dao"
	"Agora/models"
	"Agora/pkg/log"
	"Agora/pkg/response"
	"Agora/pkg/snowflake"
	"Agora/types"
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IModerationService = (*ModerationService)(nil)

type IModerationService interface {
	EnsureNotBanned(ctx context.Context, communityID, userID uint64) error
	RequireRole(ctx context.Context, communityID, userID uint64, required int8) error
	BanUser(ctx context.Context, communityID, actorID uint64, req *types.BanUserRequest) error
	UnbanUser(ctx context.Context, communityID, actorID, userID uint64) error
	CreateReport(ctx context.Context, communityID, reporterID uint64, req *types.CreateReportRequest) (*models.CommunityReport, error)
	ResolveReport(ctx context.Context, communityID, actorID uint64, req *types.ResolveReportRequest) error
	ListReports(ctx context.Context, communityID, actorID uint64, status int8) ([]*models.CommunityReport, error)
	ListBans(ctx context.Context, communityID, actorID uint64) ([]*models.CommunityBan, error)
	ListModLog(ctx context.Context, communityID, actorID uint64, limit, offset int) ([]*models.CommunityModLog, error)
	ExpireBans(ctx context.Context) (int64, error)
}

type ModerationService struct {
	DB         *gorm.DB
	BanDAO     *dao.BanDAO
	ReportDAO  *dao.ReportDAO
	ModLogDAO  *dao.ModLogDAO
	MemberDAO  *dao.CommunityMemberDAO
	PostDAO    *dao.PostDAO
	CommentDAO *dao.CommentDAO
}

// EnsureNotBanned 写操作统一前置校验: 生效中的封禁阻断发帖/评论/投票, 不阻断读
func (s *ModerationService) EnsureNotBanned(ctx context.Context, communityID, userID uint64) error {
	ban, err := s.BanDAO.GetActive(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if ban != nil && ban.Blocking(time.Now()) {
		return response.Forbidden("已被该社区封禁")
	}
	return nil
}

// RequireRole 权限校验, 单一"不低于"比较
func (s *ModerationService) RequireRole(ctx context.Context, communityID, userID uint64, required int8) error {
	role, err := s.MemberDAO.GetRole(ctx, communityID, userID)
	if err != nil {
		return err
	}
	if !models.RoleAtLeast(role, required) {
		return response.Forbidden("没有操作权限")
	}
	return nil
}

// BanUser 封禁用户
// 封禁记录和审计日志在同一事务里落库, 不允许只有其一
func (s *ModerationService) BanUser(ctx context.Context, communityID, actorID uint64, req *types.BanUserRequest) error {
	if err := s.RequireRole(ctx, communityID, actorID, models.RoleModerator); err != nil {
		return err
	}

	targetRole, err := s.MemberDAO.GetRole(ctx, communityID, req.UserID)
	if err != nil {
		return err
	}
	if targetRole == models.RoleOwner {
		return response.Conflict("不能封禁社区主")
	}

	existing, err := s.BanDAO.GetActive(ctx, communityID, req.UserID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Blocking(time.Now()) {
		return response.Conflict("该用户已在封禁中")
	}

	var expiresAt *time.Time
	if req.ExpiresHours > 0 {
		t := time.Now().Add(time.Duration(req.ExpiresHours) * time.Hour)
		expiresAt = &t
	}

	ban := &models.CommunityBan{
		ID:          uint64(snowflake.GenID()),
		CommunityID: communityID,
		UserID:      req.UserID,
		Reason:      req.Reason,
		Status:      models.BanActive,
		BannedByID:  actorID,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ban).Error; err != nil {
			return err
		}
		return s.appendLog(tx, communityID, actorID, models.ModActionBanUser, &req.UserID, req.Reason)
	})
}

// UnbanUser 解封
func (s *ModerationService) UnbanUser(ctx context.Context, communityID, actorID, userID uint64) error {
	if err := s.RequireRole(ctx, communityID, actorID, models.RoleModerator); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CommunityBan{}).
			Where("community_id = ? AND user_id = ? AND status = ?", communityID, userID, models.BanActive).
			Update("status", models.BanExpired)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.Conflict("该用户不在封禁中")
		}
		return s.appendLog(tx, communityID, actorID, models.ModActionUnbanUser, &userID, "")
	})
}

// CreateReport 创建举报, 目标必须是帖子或评论二选一且存在
func (s *ModerationService) CreateReport(ctx context.Context, communityID, reporterID uint64, req *types.CreateReportRequest) (*models.CommunityReport, error) {
	if (req.PostID == 0) == (req.CommentID == 0) {
		return nil, response.Invalid("举报目标必须是帖子或评论二选一")
	}
	if err := s.EnsureNotBanned(ctx, communityID, reporterID); err != nil {
		return nil, err
	}

	report := &models.CommunityReport{
		ID:          uint64(snowflake.GenID()),
		CommunityID: communityID,
		ReporterID:  reporterID,
		Reason:      req.Reason,
		Status:      models.ReportOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if req.PostID != 0 {
		post, err := s.PostDAO.FindByID(ctx, req.PostID)
		if err != nil {
			return nil, err
		}
		if post == nil || post.CommunityID != communityID {
			return nil, response.NotFound("帖子不存在")
		}
		report.PostID = &req.PostID
	} else {
		comment, err := s.CommentDAO.GetByID(ctx, req.CommentID)
		if err != nil {
			return nil, err
		}
		if comment == nil {
			return nil, response.NotFound("评论不存在")
		}
		post, err := s.PostDAO.FindByID(ctx, comment.PostID)
		if err != nil {
			return nil, err
		}
		if post == nil || post.CommunityID != communityID {
			return nil, response.NotFound("评论不存在")
		}
		report.CommentID = &req.CommentID
	}

	if err := s.ReportDAO.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ResolveReport 举报终态流转, OPEN -> RESOLVED/DISMISSED
// 处理内容本身与否是版主的判断, 这里只落结论和审计
func (s *ModerationService) ResolveReport(ctx context.Context, communityID, actorID uint64, req *types.ResolveReportRequest) error {
	if err := s.RequireRole(ctx, communityID, actorID, models.RoleModerator); err != nil {
		return err
	}

	report, err := s.ReportDAO.FindByID(ctx, req.ReportID)
	if err != nil {
		return err
	}
	if report != nil && report.CommunityID != communityID {
		report = nil
	}
	status, action, err := reportOutcome(report, req.Status)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 只允许从 OPEN 出发, 抢不到行说明并发处理中已落了终态
		result := tx.Model(&models.CommunityReport{}).
			Where("id = ? AND community_id = ? AND status = ?", req.ReportID, communityID, models.ReportOpen).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.Conflict("举报已处理")
		}
		return s.appendLog(tx, communityID, actorID, action, nil, "")
	})
}

// reportOutcome 举报终态判定: 缺失与已终态是两种错误
func reportOutcome(report *models.CommunityReport, requested string) (int8, string, error) {
	if report == nil {
		return 0, "", response.NotFound("举报不存在")
	}
	if report.Status != models.ReportOpen {
		return 0, "", response.Conflict("举报已处理")
	}
	if requested == "DISMISSED" {
		return models.ReportDismissed, models.ModActionDismissReport, nil
	}
	return models.ReportResolved, models.ModActionResolveReport, nil
}

func (s *ModerationService) ListReports(ctx context.Context, communityID, actorID uint64, status int8) ([]*models.CommunityReport, error) {
	if err := s.RequireRole(ctx, communityID, actorID, models.RoleModerator); err != nil {
		return nil, err
	}
	return s.ReportDAO.ListByCommunity(ctx, communityID, status)
}

func (s *ModerationService) ListBans(ctx context.Context, communityID, actorID uint64) ([]*models.CommunityBan, error) {
	if err := s.RequireRole(ctx, communityID, actorID, models.RoleModerator); err != nil {
		return nil, err
	}
	return s.BanDAO.ListByCommunity(ctx, communityID, models.BanActive)
}

func (s *ModerationService) ListModLog(ctx context.Context, communityID, actorID uint64, limit, offset int) ([]*models.CommunityModLog, error) {
	if err := s.RequireRole(ctx, communityID, actorID, models.RoleModerator); err != nil {
		return nil, err
	}
	return s.ModLogDAO.ListByCommunity(ctx, communityID, limit, offset)
}

// ExpireBans 维护任务: 把过期封禁的状态位对齐
// 写路径不依赖这个(Blocking 按时间判断), 只是让列表展示和状态一致
func (s *ModerationService) ExpireBans(ctx context.Context) (int64, error) {
	n, err := s.BanDAO.ExpireDue(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.L.Info("expired community bans", zap.Int64("count", n))
	}
	return n, nil
}

// appendLog 在调用方事务里追加审计记录
func (s *ModerationService) appendLog(tx *gorm.DB, communityID, actorID uint64, action string, targetUserID *uint64, reason string) error {
	entry := &models.CommunityModLog{
		ID:           uint64(snowflake.GenID()),
		CommunityID:  communityID,
		ModeratorID:  actorID,
		Action:       action,
		TargetUserID: targetUserID,
		Reason:       reason,
		CreatedAt:    time.Now(),
	}
	return tx.Create(entry).Error
}
