package handler

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/models"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"Agora/service"
	"Agora/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ModerationHandler struct {
	Config            *config.Config
	ModerationService service.IModerationService
	CommunityService  service.ICommunityService
	PostService       service.IPostService
	CommentService    service.ICommentService
}

func (h *ModerationHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))

	mod := r.Group("/v1/moderation", authorize)
	mod.POST("/posts/:id/remove", context.Wrap(h.RemovePost))
	mod.POST("/posts/:id/pin", context.Wrap(h.PinPost))
	mod.POST("/posts/:id/unpin", context.Wrap(h.UnpinPost))
	mod.POST("/posts/:id/lock", context.Wrap(h.LockPost))
	mod.POST("/posts/:id/unlock", context.Wrap(h.UnlockPost))
	mod.POST("/comments/:id/remove", context.Wrap(h.RemoveComment))

	communities := r.Group("/v1/communities", authorize)
	communities.GET("/:slug/bans", context.Wrap(h.ListBans))
	communities.POST("/:slug/bans", context.Wrap(h.BanUser))
	communities.DELETE("/:slug/bans", context.Wrap(h.UnbanUser))
	// 旧路由别名
	communities.POST("/:slug/unban", context.Wrap(h.UnbanUser))
	communities.GET("/:slug/reports", context.Wrap(h.ListReports))
	communities.POST("/:slug/reports", context.Wrap(h.CreateReport))
	communities.POST("/:slug/reports/resolve", context.Wrap(h.ResolveReport))
	communities.GET("/:slug/modlog", context.Wrap(h.ListModLog))
}

func (h *ModerationHandler) modPostAction(c *gin.Context, fn func(actorID, postID uint64) error) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}
	if err := fn(actorID, postID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *ModerationHandler) RemovePost(c *gin.Context) error {
	// reason 可选, 空请求体也放行
	var req types.RemoveContentRequest
	_ = c.ShouldBindJSON(&req)
	return h.modPostAction(c, func(actorID, postID uint64) error {
		return h.PostService.RemovePost(c, actorID, postID, req.Reason)
	})
}

func (h *ModerationHandler) PinPost(c *gin.Context) error {
	return h.modPostAction(c, func(actorID, postID uint64) error {
		return h.PostService.SetPinned(c, actorID, postID, true)
	})
}

func (h *ModerationHandler) UnpinPost(c *gin.Context) error {
	return h.modPostAction(c, func(actorID, postID uint64) error {
		return h.PostService.SetPinned(c, actorID, postID, false)
	})
}

func (h *ModerationHandler) LockPost(c *gin.Context) error {
	return h.modPostAction(c, func(actorID, postID uint64) error {
		return h.PostService.SetLocked(c, actorID, postID, true)
	})
}

func (h *ModerationHandler) UnlockPost(c *gin.Context) error {
	return h.modPostAction(c, func(actorID, postID uint64) error {
		return h.PostService.SetLocked(c, actorID, postID, false)
	})
}

func (h *ModerationHandler) RemoveComment(c *gin.Context) error {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || commentID == 0 {
		return response.NewError(http.StatusBadRequest, "id 参数错误")
	}
	var req types.RemoveContentRequest
	_ = c.ShouldBindJSON(&req)
	actorID, err := context.GetUserID(c)
	if err != nil {
		return response.Unauthenticated("未登录")
	}

	if err := h.CommentService.RemoveComment(c, actorID, commentID, req.Reason); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *ModerationHandler) BanUser(c *gin.Context) error {
	var req types.BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	community, actorID, err := h.resolveActor(c)
	if err != nil {
		return err
	}

	if err := h.ModerationService.BanUser(c, community.ID, actorID, &req); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *ModerationHandler) UnbanUser(c *gin.Context) error {
	// DELETE 请求体可能为空, 允许用 ?user_id= 指定
	var req types.UnbanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if v, qerr := strconv.ParseUint(c.Query("user_id"), 10, 64); qerr == nil && v > 0 {
			req.UserID = v
		} else {
			return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
		}
	}
	community, actorID, err := h.resolveActor(c)
	if err != nil {
		return err
	}

	if err := h.ModerationService.UnbanUser(c, community.ID, actorID, req.UserID); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *ModerationHandler) ListBans(c *gin.Context) error {
	community, actorID, err := h.resolveActor(c)
	if err != nil {
		return err
	}
	bans, err := h.ModerationService.ListBans(c, community.ID, actorID)
	if err != nil {
		return err
	}
	response.Success(c, bans)
	return nil
}

func (h *ModerationHandler) CreateReport(c *gin.Context) error {
	var req types.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	community, reporterID, err := h.resolveActor(c)
	if err != nil {
		return err
	}

	report, err := h.ModerationService.CreateReport(c, community.ID, reporterID, &req)
	if err != nil {
		return err
	}
	response.Success(c, report)
	return nil
}

func (h *ModerationHandler) ResolveReport(c *gin.Context) error {
	var req types.ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "请求参数错误: "+err.Error())
	}
	community, actorID, err := h.resolveActor(c)
	if err != nil {
		return err
	}

	if err := h.ModerationService.ResolveReport(c, community.ID, actorID, &req); err != nil {
		return err
	}
	response.Success(c, "ok")
	return nil
}

func (h *ModerationHandler) ListReports(c *gin.Context) error {
	community, actorID, err := h.resolveActor(c)
	if err != nil {
		return err
	}

	status := models.ReportOpen
	switch c.DefaultQuery("status", "open") {
	case "open":
		status = models.ReportOpen
	case "resolved":
		status = models.ReportResolved
	case "dismissed":
		status = models.ReportDismissed
	case "all":
		status = -1
	default:
		return response.Invalid("status 只支持 open/resolved/dismissed/all")
	}

	reports, err := h.ModerationService.ListReports(c, community.ID, actorID, status)
	if err != nil {
		return err
	}
	response.Success(c, reports)
	return nil
}

func (h *ModerationHandler) ListModLog(c *gin.Context) error {
	community, actorID, err := h.resolveActor(c)
	if err != nil {
		return err
	}

	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}

	entries, err := h.ModerationService.ListModLog(c, community.ID, actorID, limit, offset)
	if err != nil {
		return err
	}
	response.Success(c, entries)
	return nil
}

func (h *ModerationHandler) resolveActor(c *gin.Context) (*models.Community, uint64, error) {
	community, err := h.CommunityService.ResolveSlug(c, c.Param("slug"))
	if err != nil {
		return nil, 0, err
	}
	actorID, err := context.GetUserID(c)
	if err != nil {
		return nil, 0, response.Unauthenticated("未登录")
	}
	return community, actorID, nil
}
