package types

import (
	"Agora/models"
	"encoding/json"
)

type CreatePostRequest struct {
	CommunityID uint64          `json:"community_id" binding:"required"`
	Title       string          `json:"title" binding:"required,max=300"`
	Type        int8            `json:"type" binding:"omitempty,oneof=1 2 3 4 5"`
	Content     string          `json:"content"`
	Payload     json.RawMessage `json:"payload"` // 链接/图片/投票/视频负载, 按 type 校验
}

// LinkPayload type=LINK
type LinkPayload struct {
	URL string `json:"url"`
}

// ImagePayload type=IMAGE
type ImagePayload struct {
	ImageIDs []string `json:"image_ids"`
}

// PollPayload type=POLL
type PollPayload struct {
	Options []string `json:"options"`
}

// VideoPayload type=VIDEO
type VideoPayload struct {
	VideoID string `json:"video_id"`
}

// PostResponse 帖子视图, 叠加了当前用户的投票和收藏状态
type PostResponse struct {
	*models.Post
	MyVote  int8 `json:"my_vote"` // 1 赞, -1 踩, 0 未投
	IsSaved bool `json:"is_saved"`
}

type RemoveContentRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
