package handler

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"Agora/service"
	"Agora/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	Config      *config.Config
	PostService service.IPostService
}

func (h *PostHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	optional := middleware.OptionalAuth([]byte(h.Config.Jwt.Secret))

	posts := r.Group("/v1/posts")
	posts.POST("", authorize, context.Wrap(h.CreatePost))
	posts.GET("/:id", optional, context.Wrap(h.GetPost))
	posts.DELETE("/:id", authorize, context.Wrap(h.DeletePost))
	posts.POST("/:id/save", authorize, context.Wrap(h.SavePost))
	posts.DELETE("/:id/save", authorize, context.Wrap(h.UnsavePost))
}

func (h *PostHandler) CreatePost(c *gin.Context) error {
	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	post, err := h.PostService.CreatePost(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, post)
	return nil
}

func (h *PostHandler) GetPost(c *gin.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}

	post, err := h.PostService.GetPost(c, postID, context.CurrentUserID(c))
	if err != nil {
		return err
	}
	response.Success(c, post)
	return nil
}

func (h *PostHandler) DeletePost(c *gin.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.PostService.DeletePost(c, userID, postID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *PostHandler) SavePost(c *gin.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.PostService.SavePost(c, userID, postID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *PostHandler) UnsavePost(c *gin.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.PostService.UnsavePost(c, userID, postID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}
