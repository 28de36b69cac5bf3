package handler

import (
	"Pawmate/pkg/context"
	"Pawmate/pkg/response"
	"Pawmate/service"
	"Pawmate/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Reaction struct {
	ReactionService service.IReactionService
}

func (h *Reaction) RegisterRouter(r gin.IRouter) {
	r.PUT("/v1/reactions/:entity_type/:entity_id", context.Wrap(h.Set))       // 设置反应
	r.DELETE("/v1/reactions/:entity_type/:entity_id", context.Wrap(h.Clear))  // 清除反应
	r.GET("/v1/reactions/:entity_type/:entity_id/counters", context.Wrap(h.Counters))
	r.GET("/v1/reactions/:entity_type/:entity_id/me", context.Wrap(h.Mine))
	r.GET("/v1/reactions/:entity_type/:entity_id/users", context.Wrap(h.Reactors))
}

func entityParams(c *gin.Context) (string, uint64, error) {
	entityType := c.Param("entity_type")
	entityID, err := strconv.ParseUint(c.Param("entity_id"), 10, 64)
	if err != nil {
		return "", 0, response.NewError(http.StatusBadRequest, "非法的实体 id")
	}
	return entityType, entityID, nil
}

func (h *Reaction) Set(c *gin.Context) error {
	entityType, entityID, err := entityParams(c)
	if err != nil {
		return err
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.SetReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "kind 不能为空")
	}
	if req.UserID != 0 && req.UserID != uid {
		return response.NewError(http.StatusForbidden, "无权操作他人反应")
	}

	if err := h.ReactionService.Apply(c.Request.Context(), entityType, entityID, uid, &req.Kind); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Reaction) Clear(c *gin.Context) error {
	entityType, entityID, err := entityParams(c)
	if err != nil {
		return err
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.ClearReactionRequest
	_ = c.ShouldBindJSON(&req) // 请求体可为空
	if req.UserID != 0 && req.UserID != uid {
		return response.NewError(http.StatusForbidden, "无权操作他人反应")
	}

	if err := h.ReactionService.Apply(c.Request.Context(), entityType, entityID, uid, nil); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Reaction) Counters(c *gin.Context) error {
	entityType, entityID, err := entityParams(c)
	if err != nil {
		return err
	}
	counters, err := h.ReactionService.GetCounters(c.Request.Context(), entityType, entityID)
	if err != nil {
		return err
	}
	if counters == nil {
		counters = map[string]int64{}
	}
	response.Success(c, &types.CountersResponse{
		EntityType: entityType,
		EntityID:   entityID,
		Counters:   counters,
	})
	return nil
}

func (h *Reaction) Mine(c *gin.Context) error {
	entityType, entityID, err := entityParams(c)
	if err != nil {
		return err
	}
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	kind, err := h.ReactionService.GetMyReaction(c.Request.Context(), entityType, entityID, uid)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"kind": kind})
	return nil
}

func (h *Reaction) Reactors(c *gin.Context) error {
	entityType, entityID, err := entityParams(c)
	if err != nil {
		return err
	}
	var req types.ListReactorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if req.PageSize <= 0 {
		req.PageSize = types.DefaultPageSize
	}
	desc := req.Order != "asc"

	items, err := h.ReactionService.ListReactors(c.Request.Context(), entityType, entityID, req.Kind, req.PageSize, desc)
	if err != nil {
		return err
	}
	response.Success(c, items)
	return nil
}
