package service

import (
	"Agora/dao"
	"Agora/models"
	"Agora/pkg/response"
	"Agora/pkg/snowflake"
	"Agora/types"
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TombstoneContent 墓碑文案, 作者删除后占位
const TombstoneContent = "[已删除]"

var _ ICommentService = (*CommentService)(nil)

type ICommentService interface {
	CreateComment(ctx context.Context, userID uint64, req *types.CreateCommentRequest) (*models.Comment, error)
	EditComment(ctx context.Context, userID, commentID uint64, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	RemoveComment(ctx context.Context, actorID, commentID uint64, reason string) error
	GetCommentTree(ctx context.Context, postID, currentUserID uint64) (*types.CommentTreeResponse, error)
	RecomputeCommentCount(ctx context.Context, postID uint64) (int64, error)
}

type CommentService struct {
	DB         *gorm.DB
	CommentDAO *dao.CommentDAO
	PostDAO    *dao.PostDAO
	Moderation IModerationService
	VoteSvc    IVoteService
}

// CreateComment 创建评论
// 锁定的帖子拒绝新评论; 父评论必须同帖且未被移除, 墓碑父节点允许回复
func (s *CommentService) CreateComment(ctx context.Context, userID uint64, req *types.CreateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, response.Invalid("评论内容不能为空")
	}

	post, err := s.PostDAO.FindByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil || !post.Visible() {
		return nil, response.NotFound("帖子不存在")
	}
	if post.IsLocked {
		return nil, response.Locked("帖子已锁定,无法评论")
	}

	if err := s.Moderation.EnsureNotBanned(ctx, post.CommunityID, userID); err != nil {
		return nil, err
	}

	if req.ParentID != 0 {
		parent, err := s.CommentDAO.GetByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.IsRemoved {
			return nil, response.NotFound("父评论不存在")
		}
		if parent.PostID != req.PostID {
			return nil, response.Invalid("父评论不属于该帖子")
		}
	}

	comment := &models.Comment{
		ID:        uint64(snowflake.GenID()),
		PostID:    req.PostID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// 评论行和帖子评论数同事务落库
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e := tx.Create(comment).Error; e != nil {
			return e
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", req.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// EditComment 编辑评论, 仅作者本人, 每次编辑都刷新 edited_at
func (s *CommentService) EditComment(ctx context.Context, userID, commentID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, response.Invalid("评论内容不能为空")
	}

	comment, err := s.CommentDAO.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.IsDeleted || comment.IsRemoved {
		return nil, response.NotFound("评论不存在")
	}
	if comment.UserID != userID {
		return nil, response.Forbidden("只能编辑自己的评论")
	}

	if err := s.CommentDAO.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}

	now := time.Now()
	comment.Content = content
	comment.EditedAt = &now
	return comment, nil
}

// DeleteComment 作者软删除, 留墓碑, 子树保留
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.CommentDAO.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.IsDeleted || comment.IsRemoved {
		return response.NotFound("评论不存在")
	}
	if comment.UserID != userID {
		return response.Forbidden("只能删除自己的评论")
	}

	return s.CommentDAO.SetDeleted(ctx, commentID)
}

// RemoveComment 版主移除, 整棵子树不再展示, 同事务追加审计
func (s *CommentService) RemoveComment(ctx context.Context, actorID, commentID uint64, reason string) error {
	comment, err := s.CommentDAO.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.IsRemoved {
		return response.NotFound("评论不存在")
	}

	post, err := s.PostDAO.FindByID(ctx, comment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return response.NotFound("评论不存在")
	}

	if err := s.Moderation.RequireRole(ctx, post.CommunityID, actorID, models.RoleModerator); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Comment{}).
			Where("id = ? AND is_removed = 0", commentID).
			Update("is_removed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.Conflict("评论已被移除")
		}

		entry := &models.CommunityModLog{
			ID:           uint64(snowflake.GenID()),
			CommunityID:  post.CommunityID,
			ModeratorID:  actorID,
			Action:       models.ModActionRemoveComment,
			TargetUserID: &comment.UserID,
			Reason:       reason,
			CreatedAt:    time.Now(),
		}
		return tx.Create(entry).Error
	})
}

// GetCommentTree 帖子的评论树
// 被删除/移除的帖子仍可直查, 保证讨论线索完整
func (s *CommentService) GetCommentTree(ctx context.Context, postID, currentUserID uint64) (*types.CommentTreeResponse, error) {
	post, err := s.PostDAO.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, response.NotFound("帖子不存在")
	}

	comments, err := s.CommentDAO.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var myVotes map[uint64]int8
	if currentUserID > 0 && len(comments) > 0 {
		ids := make([]uint64, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		myVotes, _ = s.VoteSvc.BatchGetMyVotes(ctx, currentUserID, models.VoteTargetComment, ids)
	}

	forest, total := buildCommentForest(comments, myVotes)
	return &types.CommentTreeResponse{Comments: forest, Total: total}, nil
}

// RecomputeCommentCount 对账: 按评论表重算帖子的评论计数
func (s *CommentService) RecomputeCommentCount(ctx context.Context, postID uint64) (int64, error) {
	count, err := s.CommentDAO.CountVisibleByPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	err = s.PostDAO.UpdateByID(ctx, postID, map[string]any{"comment_count": count})
	return count, err
}

// buildCommentForest 平铺评论重建森林
// 排序契约: 顶级评论按时间倒序(新讨论在前), 同层回复按时间正序
// 墓碑节点保留位置隐藏内容; 被移除节点连同整棵子树裁掉
// 父节点缺失的一律按顶级处理, 不做环处理(关系每次由平铺行重建)
func buildCommentForest(comments []*models.Comment, myVotes map[uint64]int8) ([]*types.CommentNode, int) {
	byID := make(map[uint64]*models.Comment, len(comments))
	children := make(map[uint64][]*models.Comment)
	roots := make([]*models.Comment, 0)

	for _, c := range comments {
		byID[c.ID] = c
	}
	for _, c := range comments {
		if c.ParentID == 0 || byID[c.ParentID] == nil {
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	sort.Slice(roots, func(i, j int) bool {
		if roots[i].CreatedAt.Equal(roots[j].CreatedAt) {
			return roots[i].ID > roots[j].ID
		}
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})

	total := 0
	var build func(c *models.Comment) *types.CommentNode
	build = func(c *models.Comment) *types.CommentNode {
		if c.IsRemoved {
			return nil
		}
		total++

		node := &types.CommentNode{
			ID:        c.ID,
			PostID:    c.PostID,
			UserID:    c.UserID,
			ParentID:  c.ParentID,
			Content:   c.Content,
			Score:     c.Score,
			MyVote:    myVotes[c.ID],
			EditedAt:  c.EditedAt,
			CreatedAt: c.CreatedAt,
			Children:  make([]*types.CommentNode, 0),
		}
		if c.IsDeleted {
			node.IsTombstone = true
			node.Content = TombstoneContent
			node.UserID = 0
			node.EditedAt = nil
		}

		kids := children[c.ID]
		sort.Slice(kids, func(i, j int) bool {
			if kids[i].CreatedAt.Equal(kids[j].CreatedAt) {
				return kids[i].ID < kids[j].ID
			}
			return kids[i].CreatedAt.Before(kids[j].CreatedAt)
		})
		for _, kid := range kids {
			if child := build(kid); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	}

	forest := make([]*types.CommentNode, 0, len(roots))
	for _, root := range roots {
		if node := build(root); node != nil {
			forest = append(forest, node)
		}
	}
	return forest, total
}
