package handler

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"Agora/service"
	"Agora/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	Config      *config.Config
	FeedService service.IFeedService
}

func (h *FeedHandler) RegisterRouter(r gin.IRouter) {
	optional := middleware.OptionalAuth([]byte(h.Config.Jwt.Secret))

	r.GET("/v1/communities/:slug/posts", optional, context.Wrap(h.ListCommunityPosts))
	r.GET("/v1/feed", optional, context.Wrap(h.ListFeed))
}

func (h *FeedHandler) ListCommunityPosts(c *gin.Context) error {
	list, err := h.FeedService.ListCommunityPosts(
		c,
		c.Param("slug"),
		c.DefaultQuery("sort", types.SortHot),
		c.Query("cursor"),
		pageSize(c),
		context.CurrentUserID(c),
	)
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

func (h *FeedHandler) ListFeed(c *gin.Context) error {
	list, err := h.FeedService.ListFeed(
		c,
		feedMode(c),
		c.DefaultQuery("sort", types.SortHot),
		c.Query("cursor"),
		pageSize(c),
		context.CurrentUserID(c),
	)
	if err != nil {
		return err
	}
	response.Success(c, list)
	return nil
}

// feedMode 信息流范围, scope 作为 mode 的旧别名
func feedMode(c *gin.Context) string {
	if mode := c.Query("mode"); mode != "" {
		return mode
	}
	return c.DefaultQuery("scope", types.FeedPopular)
}

// pageSize 每页数量, page_size 作为 limit 的旧别名
func pageSize(c *gin.Context) int {
	for _, key := range []string{"limit", "page_size"} {
		if ps := c.Query(key); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil {
				return v
			}
		}
	}
	return 0
}
