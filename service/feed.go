package service

import (
	"Agora/dao"
	"Agora/models"
	"Agora/pkg/cursor"
	"Agora/pkg/response"
	"Agora/types"
	"context"
	"sync"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var _ IFeedService = (*FeedService)(nil)

type IFeedService interface {
	ListCommunityPosts(ctx context.Context, slug, sort, cursorStr string, limit int, currentUserID uint64) (*types.FeedResponse, error)
	ListFeed(ctx context.Context, mode, sort, cursorStr string, limit int, currentUserID uint64) (*types.FeedResponse, error)
}

type FeedService struct {
	DB           *gorm.DB
	PostDAO      *dao.PostDAO
	CommunityDAO *dao.CommunityDAO
	MemberDAO    *dao.CommunityMemberDAO
	SavedDAO     *dao.SavedPostDAO
	VoteSvc      IVoteService
}

// ListCommunityPosts 单社区信息流
// 置顶帖不参与排序, 第一页先吐全部置顶(按创建时间倒序), 翻页只走非置顶部分
func (s *FeedService) ListCommunityPosts(ctx context.Context, slug, sort, cursorStr string, limit int, currentUserID uint64) (*types.FeedResponse, error) {
	community, err := s.CommunityDAO.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, response.NotFound("社区不存在")
	}

	cur, err := cursor.Decode(cursorStr)
	if err != nil {
		return nil, response.Invalid(err.Error())
	}
	limit = clampLimit(limit)

	var pinned []*models.Post
	if cur == nil {
		pinned, err = s.PostDAO.ListPinned(ctx, community.ID)
		if err != nil {
			return nil, err
		}
	}

	posts, err := s.listSorted(ctx, []uint64{community.ID}, true, sort, cur, limit)
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(posts) == limit {
		nextCursor = makeCursor(sort, posts[len(posts)-1])
	}

	enriched, err := s.enrich(ctx, stitchPinned(pinned, posts), currentUserID)
	if err != nil {
		return nil, err
	}
	return &types.FeedResponse{Posts: enriched, NextCursor: nextCursor}, nil
}

// ListFeed 聚合信息流
// home 限定当前用户加入的社区; popular/all 是全站
func (s *FeedService) ListFeed(ctx context.Context, mode, sort, cursorStr string, limit int, currentUserID uint64) (*types.FeedResponse, error) {
	cur, err := cursor.Decode(cursorStr)
	if err != nil {
		return nil, response.Invalid(err.Error())
	}
	limit = clampLimit(limit)

	var communityIDs []uint64
	switch mode {
	case types.FeedHome:
		if currentUserID == 0 {
			return nil, response.Unauthenticated("请先登录")
		}
		communityIDs, err = s.MemberDAO.ListCommunityIDs(ctx, currentUserID)
		if err != nil {
			return nil, err
		}
		if len(communityIDs) == 0 {
			return &types.FeedResponse{Posts: make([]*types.PostResponse, 0)}, nil
		}
	case types.FeedPopular, types.FeedAll:
		// 全站
	default:
		return nil, response.Invalid("不支持的信息流范围")
	}

	posts, err := s.listSorted(ctx, communityIDs, false, sort, cur, limit)
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(posts) == limit {
		nextCursor = makeCursor(sort, posts[len(posts)-1])
	}

	enriched, err := s.enrich(ctx, posts, currentUserID)
	if err != nil {
		return nil, err
	}
	return &types.FeedResponse{Posts: enriched, NextCursor: nextCursor}, nil
}

func (s *FeedService) listSorted(ctx context.Context, communityIDs []uint64, excludePinned bool, sort string, cur *cursor.Cursor, limit int) ([]*models.Post, error) {
	switch sort {
	case types.SortHot, "":
		return s.PostDAO.ListByHot(ctx, communityIDs, excludePinned, cur, limit)
	case types.SortNew:
		return s.PostDAO.ListByNew(ctx, communityIDs, excludePinned, cur, limit)
	case types.SortTop:
		return s.PostDAO.ListByTop(ctx, communityIDs, excludePinned, cur, limit)
	default:
		return nil, response.Invalid("不支持的排序方式")
	}
}

// makeCursor 用最后一条的排序键生成下一页游标
func makeCursor(sort string, last *models.Post) string {
	c := &cursor.Cursor{ID: last.ID}
	switch sort {
	case types.SortNew:
		c.Time = last.CreatedAt.UnixNano()
	case types.SortTop:
		c.Score = last.Score
	default:
		c.Rank = last.HotRank
	}
	return c.Encode()
}

// stitchPinned 置顶块整体放在分页结果之前
func stitchPinned(pinned, page []*models.Post) []*models.Post {
	all := make([]*models.Post, 0, len(pinned)+len(page))
	all = append(all, pinned...)
	all = append(all, page...)
	return all
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// enrich 叠加当前用户的投票和收藏状态, 两路并发取数
func (s *FeedService) enrich(ctx context.Context, posts []*models.Post, currentUserID uint64) ([]*types.PostResponse, error) {
	result := make([]*types.PostResponse, 0, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	var (
		voteMap  map[uint64]int8
		savedMap map[uint64]bool
		wg       sync.WaitGroup
	)

	if currentUserID > 0 {
		wg.Add(2)

		go func() {
			defer wg.Done()
			voteMap, _ = s.VoteSvc.BatchGetMyVotes(ctx, currentUserID, models.VoteTargetPost, postIDs)
		}()

		go func() {
			defer wg.Done()
			savedMap, _ = s.SavedDAO.BatchCheckSaved(ctx, currentUserID, postIDs)
		}()

		wg.Wait()
	}

	for _, p := range posts {
		result = append(result, &types.PostResponse{
			Post:    p,
			MyVote:  voteMap[p.ID],
			IsSaved: savedMap[p.ID],
		})
	}
	return result, nil
}
