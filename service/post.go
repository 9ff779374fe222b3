package service

import (
	"Agora/config"
	"Agora/dao"
	"Agora/models"
	"Agora/pkg/rank"
	"Agora/pkg/response"
	"Agora/pkg/snowflake"
	"Agora/types"
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	CreatePost(ctx context.Context, userID uint64, req *types.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID, currentUserID uint64) (*types.PostResponse, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
	RemovePost(ctx context.Context, actorID, postID uint64, reason string) error
	SetPinned(ctx context.Context, actorID, postID uint64, pinned bool) error
	SetLocked(ctx context.Context, actorID, postID uint64, locked bool) error
	SavePost(ctx context.Context, userID, postID uint64) error
	UnsavePost(ctx context.Context, userID, postID uint64) error
}

type PostService struct {
	DB           *gorm.DB
	Config       *config.Config
	PostDAO      *dao.PostDAO
	CommunityDAO *dao.CommunityDAO
	MemberDAO    *dao.CommunityMemberDAO
	SavedDAO     *dao.SavedPostDAO
	VoteSvc      IVoteService
	Moderation   IModerationService
}

// CreatePost 发帖
// 受限/私密社区要求成员身份; 帖子行和社区帖子计数同事务落库
func (s *PostService) CreatePost(ctx context.Context, userID uint64, req *types.CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, response.Invalid("标题不能为空")
	}

	community, err := s.CommunityDAO.FindByID(ctx, req.CommunityID)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, response.NotFound("社区不存在")
	}

	if err := s.Moderation.EnsureNotBanned(ctx, req.CommunityID, userID); err != nil {
		return nil, err
	}

	if community.Type != models.CommunityPublic {
		role, err := s.MemberDAO.GetRole(ctx, req.CommunityID, userID)
		if err != nil {
			return nil, err
		}
		if role == 0 {
			return nil, response.Forbidden("仅社区成员可以发帖")
		}
	}

	postType := req.Type
	if postType == 0 {
		postType = models.PostText
	}
	payload, err := validatePayload(postType, req.Payload)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &models.Post{
		ID:          uint64(snowflake.GenID()),
		CommunityID: req.CommunityID,
		UserID:      userID,
		Title:       req.Title,
		Type:        postType,
		Content:     req.Content,
		Payload:     payload,
		HotRank:     rank.Hot(0, now, s.Config.Rank.DecayHours),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Create(post).Error; e != nil {
			return e
		}
		return tx.Model(&models.Community{}).
			Where("id = ?", req.CommunityID).
			UpdateColumn("post_count", gorm.Expr("post_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// validatePayload 按帖子类型校验负载
func validatePayload(postType int8, raw json.RawMessage) (datatypes.JSON, error) {
	if postType == models.PostText {
		return nil, nil
	}
	if len(raw) == 0 {
		return nil, response.Invalid("该帖子类型缺少负载")
	}

	switch postType {
	case models.PostLink:
		var p types.LinkPayload
		if err := json.Unmarshal(raw, &p); err != nil || p.URL == "" {
			return nil, response.Invalid("链接负载不合法")
		}
	case models.PostImage:
		var p types.ImagePayload
		if err := json.Unmarshal(raw, &p); err != nil || len(p.ImageIDs) == 0 {
			return nil, response.Invalid("图片负载不合法")
		}
	case models.PostPoll:
		var p types.PollPayload
		if err := json.Unmarshal(raw, &p); err != nil || len(p.Options) < 2 {
			return nil, response.Invalid("投票负载至少需要两个选项")
		}
	case models.PostVideo:
		var p types.VideoPayload
		if err := json.Unmarshal(raw, &p); err != nil || p.VideoID == "" {
			return nil, response.Invalid("视频负载不合法")
		}
	}
	return datatypes.JSON(raw), nil
}

// GetPost 帖子详情
// 删除/移除的帖子仍可直查(讨论线索完整), 但内容按墓碑处理
func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint64) (*types.PostResponse, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, response.NotFound("帖子不存在")
	}

	if post.Visible() {
		// 浏览计数尽力而为, 不参与事务
		_ = s.PostDAO.IncrViewCount(ctx, postID)
	} else {
		post.Title = TombstoneContent
		post.Content = ""
		post.Payload = nil
		post.UserID = 0
	}

	resp := &types.PostResponse{Post: post}
	if currentUserID > 0 {
		votes, _ := s.VoteSvc.BatchGetMyVotes(ctx, currentUserID, models.VoteTargetPost, []uint64{postID})
		resp.MyVote = votes[postID]
		saved, _ := s.SavedDAO.BatchCheckSaved(ctx, currentUserID, []uint64{postID})
		resp.IsSaved = saved[postID]
	}
	return resp, nil
}

// DeletePost 作者删除
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.IsDeleted || post.IsRemoved {
		return response.NotFound("帖子不存在")
	}
	if post.UserID != userID {
		return response.Forbidden("只能删除自己的帖子")
	}

	return s.PostDAO.UpdateByID(ctx, postID, map[string]any{"is_deleted": true})
}

// RemovePost 版主移除, 同事务追加审计
func (s *PostService) RemovePost(ctx context.Context, actorID, postID uint64, reason string) error {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.IsRemoved {
		return response.NotFound("帖子不存在")
	}

	if err := s.Moderation.RequireRole(ctx, post.CommunityID, actorID, models.RoleModerator); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{}).
			Where("id = ? AND is_removed = 0", postID).
			Update("is_removed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.Conflict("帖子已被移除")
		}

		entry := &models.CommunityModLog{
			ID:           uint64(snowflake.GenID()),
			CommunityID:  post.CommunityID,
			ModeratorID:  actorID,
			Action:       models.ModActionRemovePost,
			TargetUserID: &post.UserID,
			Reason:       reason,
			CreatedAt:    time.Now(),
		}
		return tx.Create(entry).Error
	})
}

// SetPinned 置顶/取消置顶
func (s *PostService) SetPinned(ctx context.Context, actorID, postID uint64, pinned bool) error {
	action := models.ModActionPinPost
	if !pinned {
		action = models.ModActionUnpinPost
	}
	return s.modUpdatePost(ctx, actorID, postID, "is_pinned", pinned, action)
}

// SetLocked 锁定/解锁, 锁定的帖子拒绝新评论
func (s *PostService) SetLocked(ctx context.Context, actorID, postID uint64, locked bool) error {
	action := models.ModActionLockPost
	if !locked {
		action = models.ModActionUnlockPost
	}
	return s.modUpdatePost(ctx, actorID, postID, "is_locked", locked, action)
}

func (s *PostService) modUpdatePost(ctx context.Context, actorID, postID uint64, column string, value bool, action string) error {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || !post.Visible() {
		return response.NotFound("帖子不存在")
	}

	if err := s.Moderation.RequireRole(ctx, post.CommunityID, actorID, models.RoleModerator); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update(column, value).Error; e != nil {
			return e
		}

		entry := &models.CommunityModLog{
			ID:           uint64(snowflake.GenID()),
			CommunityID:  post.CommunityID,
			ModeratorID:  actorID,
			Action:       action,
			TargetUserID: &post.UserID,
			CreatedAt:    time.Now(),
		}
		return tx.Create(entry).Error
	})
}

// SavePost 收藏
func (s *PostService) SavePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || !post.Visible() {
		return response.NotFound("帖子不存在")
	}
	return s.SavedDAO.Save(ctx, userID, postID)
}

// UnsavePost 取消收藏
func (s *PostService) UnsavePost(ctx context.Context, userID, postID uint64) error {
	return s.SavedDAO.Unsave(ctx, userID, postID)
}
