package server

import (
	"Agora/handler"
)

type Handlers struct {
	Community  *handler.CommunityHandler
	Post       *handler.PostHandler
	Comment    *handler.CommentHandler
	Vote       *handler.VoteHandler
	Feed       *handler.FeedHandler
	Moderation *handler.ModerationHandler
}
