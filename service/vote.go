package service

import (
	"Agora/config"
	"Agora/dao"
	"Agora/models"
	"Agora/pkg/log"
	"Agora/pkg/rank"
	"Agora/pkg/response"
	"Agora/pkg/snowflake"
	"Agora/types"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// 用户投票状态缓存, hash: target_id -> value
	UserVotesKey = "user:votes:%d:%d" // userID, targetType
	VoteCacheTTL = 30 * time.Minute
)

var _ IVoteService = (*VoteService)(nil)

type IVoteService interface {
	CastVote(ctx context.Context, userID uint64, req *types.CastVoteRequest) (*types.CastVoteResponse, error)
	BatchGetMyVotes(ctx context.Context, userID uint64, targetType int8, targetIDs []uint64) (map[uint64]int8, error)
	RecomputeScore(ctx context.Context, targetType int8, targetID uint64) (int64, error)
}

type VoteService struct {
	DB         *gorm.DB
	Config     *config.Config
	VoteDAO    *dao.VoteDAO
	PostDAO    *dao.PostDAO
	CommentDAO *dao.CommentDAO
	Moderation IModerationService
	Redis      *redis.Client
}

// voteTransition 投票状态迁移
// 约定: 再投同方向为撤销(toggle-off), value=0 显式撤销
// 返回写到冗余分数上的增量和最终票值
func voteTransition(prev, requested int8) (delta int64, final int8) {
	if requested == models.VoteNone || requested == prev {
		return int64(-prev), models.VoteNone
	}
	return int64(requested - prev), requested
}

// CastVote 投票
// 权威分数由服务端在事务内重算, 客户端的乐观增量只用于界面预估
func (s *VoteService) CastVote(ctx context.Context, userID uint64, req *types.CastVoteRequest) (*types.CastVoteResponse, error) {
	// 1. 目标必须存在且未被删除/移除, 顺带拿到所属社区
	communityID, post, comment, err := s.resolveTarget(ctx, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}

	// 2. 封禁校验
	if err := s.Moderation.EnsureNotBanned(ctx, communityID, userID); err != nil {
		return nil, err
	}

	// 3. 单飞锁, 同一用户对同一目标的并发点击串行化
	lockKey := fmt.Sprintf("lock:vote:%d:%d:%d", userID, req.TargetType, req.TargetID)
	lock, err := s.Redis.SetNX(ctx, lockKey, 1, 5*time.Second).Result()
	if err != nil || !lock {
		return nil, response.Conflict("操作太频繁,请稍后重试")
	}
	defer s.Redis.Del(ctx, lockKey)

	// 4. 事务: 投票行和冗余分数一起变, 增量算术不丢更新
	var newScore int64
	var final int8
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev int8
		var existing models.Vote
		e := tx.Where("user_id = ? AND target_type = ? AND target_id = ?",
			userID, req.TargetType, req.TargetID).
			Limit(1).Find(&existing).Error
		if e != nil {
			return e
		}
		if existing.ID != 0 {
			prev = existing.Value
		}

		var delta int64
		delta, final = voteTransition(prev, req.Value)
		if delta == 0 && final == prev {
			// 没有投过又请求撤销, 幂等返回当前分
			newScore = s.currentScore(post, comment)
			return nil
		}

		// 投票行: 撤销删行, 换向改行, 新投插行
		switch {
		case final == models.VoteNone && existing.ID != 0:
			if e := tx.Delete(&models.Vote{}, existing.ID).Error; e != nil {
				return e
			}
		case existing.ID != 0:
			if e := tx.Model(&models.Vote{}).Where("id = ?", existing.ID).
				Update("value", final).Error; e != nil {
				return e
			}
		case final != models.VoteNone:
			vote := &models.Vote{
				ID:         uint64(snowflake.GenID()),
				UserID:     userID,
				TargetType: req.TargetType,
				TargetID:   req.TargetID,
				Value:      final,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			}
			if e := tx.Create(vote).Error; e != nil {
				return e
			}
		}

		// 冗余分数: 原子增量, 再读回事务内的权威值
		if req.TargetType == models.VoteTargetPost {
			if e := tx.Model(&models.Post{}).Where("id = ?", req.TargetID).
				UpdateColumn("score", gorm.Expr("score + ?", delta)).Error; e != nil {
				return e
			}
			if e := tx.Model(&models.Post{}).Where("id = ?", req.TargetID).
				Select("score").Scan(&newScore).Error; e != nil {
				return e
			}
			// 热度键随分数同事务更新, 翻页排序才稳定
			hot := rank.Hot(newScore, post.CreatedAt, s.Config.Rank.DecayHours)
			return tx.Model(&models.Post{}).Where("id = ?", req.TargetID).
				UpdateColumn("hot_rank", hot).Error
		}

		if e := tx.Model(&models.Comment{}).Where("id = ?", req.TargetID).
			UpdateColumn("score", gorm.Expr("score + ?", delta)).Error; e != nil {
			return e
		}
		return tx.Model(&models.Comment{}).Where("id = ?", req.TargetID).
			Select("score").Scan(&newScore).Error
	})
	if err != nil {
		return nil, err
	}

	// 5. 更新缓存(失败不影响业务)
	s.updateVoteCache(ctx, userID, req.TargetType, req.TargetID, final)

	return &types.CastVoteResponse{Score: newScore, MyVote: final}, nil
}

// resolveTarget 校验目标并返回所属社区
func (s *VoteService) resolveTarget(ctx context.Context, targetType int8, targetID uint64) (uint64, *models.Post, *models.Comment, error) {
	if targetType == models.VoteTargetPost {
		post, err := s.PostDAO.FindByID(ctx, targetID)
		if err != nil {
			return 0, nil, nil, err
		}
		if post == nil || !post.Visible() {
			return 0, nil, nil, response.NotFound("帖子不存在")
		}
		return post.CommunityID, post, nil, nil
	}

	comment, err := s.CommentDAO.GetByID(ctx, targetID)
	if err != nil {
		return 0, nil, nil, err
	}
	if comment == nil || comment.IsDeleted || comment.IsRemoved {
		return 0, nil, nil, response.NotFound("评论不存在")
	}
	post, err := s.PostDAO.FindByID(ctx, comment.PostID)
	if err != nil {
		return 0, nil, nil, err
	}
	if post == nil {
		return 0, nil, nil, response.NotFound("评论不存在")
	}
	return post.CommunityID, nil, comment, nil
}

func (s *VoteService) currentScore(post *models.Post, comment *models.Comment) int64 {
	if post != nil {
		return post.Score
	}
	return comment.Score
}

// BatchGetMyVotes 批量取当前用户的投票状态, 先查缓存, 缺的回源并回写
func (s *VoteService) BatchGetMyVotes(ctx context.Context, userID uint64, targetType int8, targetIDs []uint64) (map[uint64]int8, error) {
	result := make(map[uint64]int8)
	if userID == 0 || len(targetIDs) == 0 {
		return result, nil
	}

	key := fmt.Sprintf(UserVotesKey, userID, targetType)
	fields := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		fields = append(fields, fmt.Sprintf("%d", id))
	}

	missedIDs := targetIDs
	if vals, err := s.Redis.HMGet(ctx, key, fields...).Result(); err == nil && len(vals) == len(targetIDs) {
		missedIDs = make([]uint64, 0)
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				missedIDs = append(missedIDs, targetIDs[i])
				continue
			}
			switch str {
			case "1":
				result[targetIDs[i]] = models.VoteUp
			case "-1":
				result[targetIDs[i]] = models.VoteDown
			}
		}
	}

	if len(missedIDs) == 0 {
		return result, nil
	}

	// 回源数据库
	fromDB, err := s.VoteDAO.BatchGetByUser(ctx, userID, targetType, missedIDs)
	if err != nil {
		return nil, err
	}

	// 回写缓存, 没投票的也写 "0" 占位, 避免反复回源
	pipe := s.Redis.Pipeline()
	for _, id := range missedIDs {
		value := int8(0)
		if v, ok := fromDB[id]; ok {
			value = v
			result[id] = v
		}
		pipe.HSet(ctx, key, fmt.Sprintf("%d", id), fmt.Sprintf("%d", value))
	}
	pipe.Expire(ctx, key, VoteCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.L.Error("回写投票缓存失败", zap.Error(err))
	}

	return result, nil
}

// RecomputeScore 对账: 从投票账本重算净分并回写冗余字段
func (s *VoteService) RecomputeScore(ctx context.Context, targetType int8, targetID uint64) (int64, error) {
	sum, err := s.VoteDAO.SumByTarget(ctx, targetType, targetID)
	if err != nil {
		return 0, err
	}

	if targetType == models.VoteTargetPost {
		post, err := s.PostDAO.FindByID(ctx, targetID)
		if err != nil {
			return 0, err
		}
		if post == nil {
			return 0, response.NotFound("帖子不存在")
		}
		hot := rank.Hot(sum, post.CreatedAt, s.Config.Rank.DecayHours)
		err = s.PostDAO.UpdateByID(ctx, targetID, map[string]any{
			"score":    sum,
			"hot_rank": hot,
		})
		return sum, err
	}

	err = s.DB.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", targetID).
		UpdateColumn("score", sum).Error
	return sum, err
}

// 写缓存: 投票后的状态
func (s *VoteService) updateVoteCache(ctx context.Context, userID uint64, targetType int8, targetID uint64, value int8) {
	key := fmt.Sprintf(UserVotesKey, userID, targetType)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, fmt.Sprintf("%d", targetID), fmt.Sprintf("%d", value))
	pipe.Expire(ctx, key, VoteCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.L.Error("更新投票缓存失败", zap.Error(err))
	}
}
