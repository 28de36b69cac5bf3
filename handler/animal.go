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

type Animal struct {
	AnimalService service.IAnimalService
}

func (h *Animal) RegisterRouter(r gin.IRouter) {
	r.POST("/v1/animals", context.Wrap(h.Create))
	r.GET("/v1/animals/:id", context.Wrap(h.Get))
}

func (h *Animal) Create(c *gin.Context) error {
	uid, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	var req types.CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	item, err := h.AnimalService.Create(c.Request.Context(), uid, &req)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}

func (h *Animal) Get(c *gin.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "非法的动物 id")
	}

	item, err := h.AnimalService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, item)
	return nil
}
