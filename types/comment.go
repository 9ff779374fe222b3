package types

import "time"

type CreateCommentRequest struct {
	PostID   uint64 `json:"post_id" binding:"required"`
	ParentID uint64 `json:"parent_id"` // 0 表示顶级评论
	Content  string `json:"content" binding:"required,max=10000"`
}

type EditCommentRequest struct {
	Content string `json:"content" binding:"required,max=10000"`
}

// CommentNode 评论树节点
// 作者删除的节点内容置为墓碑但子树保留; 版主移除的节点整棵子树不出现
type CommentNode struct {
	ID          uint64         `json:"id"`
	PostID      uint64         `json:"post_id"`
	UserID      uint64         `json:"user_id"` // 墓碑节点不暴露作者, 置 0
	ParentID    uint64         `json:"parent_id"`
	Content     string         `json:"content"`
	Score       int64          `json:"score"`
	IsTombstone bool           `json:"is_tombstone"`
	MyVote      int8           `json:"my_vote"`
	EditedAt    *time.Time     `json:"edited_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Children    []*CommentNode `json:"children"`
}

type CommentTreeResponse struct {
	Comments []*CommentNode `json:"comments"`
	Total    int            `json:"total"` // 树中可见节点总数
}
