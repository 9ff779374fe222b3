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

type CommunityHandler struct {
	Config           *config.Config
	CommunityService service.ICommunityService
}

func (h *CommunityHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	optional := middleware.OptionalAuth([]byte(h.Config.Jwt.Secret))

	communities := r.Group("/v1/communities")
	communities.POST("", authorize, context.Wrap(h.CreateCommunity))
	communities.GET("/:slug", optional, context.Wrap(h.GetCommunity))
	communities.PATCH("/:slug", authorize, context.Wrap(h.UpdateCommunity))
	communities.POST("/:slug/join", authorize, context.Wrap(h.Join))
	communities.POST("/:slug/leave", authorize, context.Wrap(h.Leave))
	communities.GET("/:slug/members", context.Wrap(h.ListMembers))
	communities.DELETE("/:slug/members/:user_id", authorize, context.Wrap(h.RemoveMember))
	communities.PUT("/:slug/members/:user_id/role", authorize, context.Wrap(h.SetRole))

	communities.GET("/:slug/flairs", context.Wrap(h.ListFlairs))
	communities.POST("/:slug/flairs", authorize, context.Wrap(h.CreateFlair))
	communities.DELETE("/:slug/flairs/:id", authorize, context.Wrap(h.DeleteFlair))

	communities.GET("/:slug/rules", context.Wrap(h.ListRules))
	communities.POST("/:slug/rules", authorize, context.Wrap(h.CreateRule))
	communities.PATCH("/:slug/rules/:id", authorize, context.Wrap(h.UpdateRule))
	communities.DELETE("/:slug/rules/:id", authorize, context.Wrap(h.DeleteRule))
}

func (h *CommunityHandler) CreateCommunity(c *gin.Context) error {
	var req types.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	community, err := h.CommunityService.CreateCommunity(c, userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, community)
	return nil
}

func (h *CommunityHandler) GetCommunity(c *gin.Context) error {
	detail, err := h.CommunityService.GetCommunity(c, c.Param("slug"), context.CurrentUserID(c))
	if err != nil {
		return err
	}
	response.Success(c, detail)
	return nil
}

func (h *CommunityHandler) UpdateCommunity(c *gin.Context) error {
	var req types.UpdateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommunityService.UpdateCommunity(c, c.Param("slug"), userID, &req); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) Join(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}
	if err := h.CommunityService.Join(c, c.Param("slug"), userID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) Leave(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}
	if err := h.CommunityService.Leave(c, c.Param("slug"), userID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) ListMembers(c *gin.Context) error {
	members, err := h.CommunityService.ListMembers(c, c.Param("slug"))
	if err != nil {
		return err
	}
	response.Success(c, members)
	return nil
}

func (h *CommunityHandler) RemoveMember(c *gin.Context) error {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		return response.NewError(http.StatusBadRequest, "user_id 参数错误")
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommunityService.RemoveMember(c, c.Param("slug"), actorID, targetID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) SetRole(c *gin.Context) error {
	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		return response.NewError(http.StatusBadRequest, "user_id 参数错误")
	}
	var req types.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommunityService.SetRole(c, c.Param("slug"), actorID, targetID, req.Role); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) ListFlairs(c *gin.Context) error {
	flairs, err := h.CommunityService.ListFlairs(c, c.Param("slug"))
	if err != nil {
		return err
	}
	response.Success(c, flairs)
	return nil
}

func (h *CommunityHandler) CreateFlair(c *gin.Context) error {
	var req types.CreateFlairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	flair, err := h.CommunityService.CreateFlair(c, c.Param("slug"), actorID, &req)
	if err != nil {
		return err
	}
	response.Success(c, flair)
	return nil
}

func (h *CommunityHandler) DeleteFlair(c *gin.Context) error {
	flairID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || flairID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommunityService.DeleteFlair(c, c.Param("slug"), actorID, flairID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) ListRules(c *gin.Context) error {
	rules, err := h.CommunityService.ListRules(c, c.Param("slug"))
	if err != nil {
		return err
	}
	response.Success(c, rules)
	return nil
}

func (h *CommunityHandler) CreateRule(c *gin.Context) error {
	var req types.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	rule, err := h.CommunityService.CreateRule(c, c.Param("slug"), actorID, &req)
	if err != nil {
		return err
	}
	response.Success(c, rule)
	return nil
}

func (h *CommunityHandler) UpdateRule(c *gin.Context) error {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	var req types.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommunityService.UpdateRule(c, c.Param("slug"), actorID, ruleID, &req); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *CommunityHandler) DeleteRule(c *gin.Context) error {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ruleID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommunityService.DeleteRule(c, c.Param("slug"), actorID, ruleID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}
