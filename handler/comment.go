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

type CommentHandler struct {
	Config         *config.Config
	CommentService service.ICommentService
}

func (h *CommentHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	optional := middleware.OptionalAuth([]byte(h.Config.Jwt.Secret))

	comments := r.Group("/v1/comments")
	comments.POST("", authorize, context.Wrap(h.CreateComment))
	comments.PATCH("/:id", authorize, context.Wrap(h.EditComment))
	comments.DELETE("/:id", authorize, context.Wrap(h.DeleteComment))

	// 评论树挂在帖子下
	r.Group("/v1/posts").GET("/:id/comments", optional, context.Wrap(h.GetCommentTree))
}

func (h *CommentHandler) CreateComment(c *gin.Context) error {
	var req types.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	comment, err := h.CommentService.CreateComment(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, comment)
	return nil
}

func (h *CommentHandler) EditComment(c *gin.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || commentID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	var req types.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	comment, err := h.CommentService.EditComment(c, userID, commentID, req.Content)
	if err != nil {
		return err
	}
	response.Success(c, comment)
	return nil
}

func (h *CommentHandler) DeleteComment(c *gin.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || commentID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommentService.DeleteComment(c, userID, commentID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommentHandler) GetCommentTree(c *gin.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}

	tree, err := h.CommentService.GetCommentTree(c, postID, context.CurrentUserID(c))
	if err != nil {
		return err
	}
	response.Success(c, tree)
	return nil
}
