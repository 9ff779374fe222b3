package handler

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"Agora/service"
	"Agora/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	Config      *config.Config
	VoteService service.IVoteService
}

func (h *VoteHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	r.POST("/v1/vote", authorize, context.Wrap(h.CastVote))
}

// CastVote 投票口径: 同值再投=撤销, 异值=改投, value=0 显式撤销
func (h *VoteHandler) CastVote(c *gin.Context) error {
	var req types.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	result, err := h.VoteService.CastVote(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, result)
	return nil
}
