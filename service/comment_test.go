package service

import (
	"testing"
	"time"

	"Agora/models"
)

func mkComment(id, parentID uint64, createdAt time.Time) *models.Comment {
	return &models.Comment{
		ID:        id,
		PostID:    100,
		UserID:    id * 10,
		ParentID:  parentID,
		Content:   "评论内容",
		CreatedAt: createdAt,
	}
}

func TestBuildCommentForestOrdering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// 两条顶级评论, 旧的带两条回复
	comments := []*models.Comment{
		mkComment(1, 0, base),
		mkComment(2, 0, base.Add(time.Hour)),
		mkComment(3, 1, base.Add(30*time.Minute)),
		mkComment(4, 1, base.Add(10*time.Minute)),
	}

	forest, total := buildCommentForest(comments, nil)

	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	if len(forest) != 2 {
		t.Fatalf("顶级评论数 = %d, want 2", len(forest))
	}
	// 顶级按最新在前
	if forest[0].ID != 2 || forest[1].ID != 1 {
		t.Errorf("顶级顺序 = [%d, %d], want [2, 1]", forest[0].ID, forest[1].ID)
	}
	// 回复按最早在前
	kids := forest[1].Children
	if len(kids) != 2 || kids[0].ID != 4 || kids[1].ID != 3 {
		t.Errorf("回复顺序错误: %+v", kids)
	}
}

func TestBuildCommentForestTombstoneKeepsSubtree(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	deleted := mkComment(1, 0, base)
	deleted.IsDeleted = true
	deleted.UserID = 42
	now := base.Add(time.Minute)
	deleted.EditedAt = &now
	reply := mkComment(2, 1, base.Add(time.Hour))

	forest, total := buildCommentForest([]*models.Comment{deleted, reply}, nil)

	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	node := forest[0]
	if !node.IsTombstone {
		t.Fatal("删除的评论应标记为墓碑")
	}
	if node.Content != TombstoneContent {
		t.Errorf("墓碑内容 = %q, want %q", node.Content, TombstoneContent)
	}
	if node.UserID != 0 {
		t.Errorf("墓碑不应暴露作者, UserID = %d", node.UserID)
	}
	if node.EditedAt != nil {
		t.Error("墓碑不应暴露编辑时间")
	}
	if len(node.Children) != 1 || node.Children[0].ID != 2 {
		t.Errorf("墓碑的子树应保留: %+v", node.Children)
	}
}

func TestBuildCommentForestRemovalPrunesSubtree(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	removed := mkComment(1, 0, base)
	removed.IsRemoved = true
	reply := mkComment(2, 1, base.Add(time.Hour))
	kept := mkComment(3, 0, base.Add(2*time.Hour))

	forest, total := buildCommentForest([]*models.Comment{removed, reply, kept}, nil)

	if total != 1 {
		t.Fatalf("total = %d, want 1", total)
	}
	if len(forest) != 1 || forest[0].ID != 3 {
		t.Fatalf("被移除评论及其子树不应出现: %+v", forest)
	}
}

// 同时删除又移除时, 移除优先, 整棵子树消失
func TestBuildCommentForestRemovedWinsOverDeleted(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c := mkComment(1, 0, base)
	c.IsDeleted = true
	c.IsRemoved = true

	forest, total := buildCommentForest([]*models.Comment{c}, nil)
	if total != 0 || len(forest) != 0 {
		t.Errorf("既删除又移除的评论不应出现: total=%d forest=%+v", total, forest)
	}
}

func TestBuildCommentForestMyVotes(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	comments := []*models.Comment{
		mkComment(1, 0, base),
		mkComment(2, 1, base.Add(time.Minute)),
	}
	votes := map[uint64]int8{1: models.VoteUp, 2: models.VoteDown}

	forest, _ := buildCommentForest(comments, votes)
	if forest[0].MyVote != models.VoteUp {
		t.Errorf("顶级评论 MyVote = %d, want 1", forest[0].MyVote)
	}
	if forest[0].Children[0].MyVote != models.VoteDown {
		t.Errorf("回复 MyVote = %d, want -1", forest[0].Children[0].MyVote)
	}
}
