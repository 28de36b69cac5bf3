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

type Post struct {
	PostService service.IPostService
}

func (h *Post) RegisterRouter(r gin.IRouter) {
	r.POST("/v1/posts", context.Wrap(h.Create))
	r.GET("/v1/posts/:id", context.Wrap(h.Get))
}

func (h *Post) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	item, err := h.PostService.Create(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Post) Get(c *gin.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的帖子 id")
	}

	item, err := h.PostService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}
