package types

type CastVoteRequest struct {
	TargetType int8   `json:"target_type" binding:"required,oneof=1 2"` // 1 帖子, 2 评论
	TargetID   uint64 `json:"target_id" binding:"required"`
	Value      int8   `json:"value" binding:"oneof=-1 0 1"` // 1 赞, -1 踩, 0 撤销
}

// CastVoteResponse 服务端重算后的权威净分, 客户端乐观预估值以此为准
type CastVoteResponse struct {
	Score  int64 `json:"score"`
	MyVote int8  `json:"my_vote"`
}
