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

type Relationship struct {
	RelationshipService service.IRelationshipService
}

func (h *Relationship) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/relationships", context.Wrap(h.List))                          // 我的关系列表
	r.PUT("/v1/relationships/:animal_id/status", context.Wrap(h.SetStatus))   // 更新关系状态
}

func (h *Relationship) List(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.ListRelationshipsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if req.PageSize <= 0 {
		req.PageSize = types.DefaultPageSize
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	offset := (req.Page - 1) * req.PageSize

	items, total, err := h.RelationshipService.ListUserRelationships(c.Request.Context(), uid, req.PageSize, offset)
	if err != nil {
		return err
	}
	response.Success(c, &types.ListRelationshipsResponse{
		Items:   items,
		Total:   total,
		HasMore: int64(offset+len(items)) < total,
	})
	return nil
}

func (h *Relationship) SetStatus(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}
	animalID, err := strconv.ParseUint(c.Param("animal_id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的动物 id")
	}

	var req types.SetRelationshipStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "status 不能为空")
	}

	if err := h.RelationshipService.SetStatus(c.Request.Context(), uid, animalID, req.Status); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}
