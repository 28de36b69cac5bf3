package service

import (
	"Pawmate/dao"
	"Pawmate/models"
	"Pawmate/pkg/response"
	"Pawmate/pkg/snowflake"
	"Pawmate/types"
	"context"
	"net/http"
	"time"
)

var _ IAnimalService = (*AnimalService)(nil)

type IAnimalService interface {
	Create(ctx context.Context, userID uint64, req *types.CreateAnimalRequest) (*types.Animal, error)
	Get(ctx context.Context, id uint64) (*types.Animal, error)
}

type AnimalService struct {
	AnimalDAO *dao.AnimalDAO
}

func (s *AnimalService) Create(ctx context.Context, userID uint64, req *types.CreateAnimalRequest) (*types.Animal, error) {
	now := time.Now()
	item := models.Animal{
		ID:          uint64(snowflake.GenID()),
		UserID:      userID,
		Name:        req.Name,
		Species:     req.Species,
		City:        req.City,
		CoverURL:    req.CoverURL,
		Description: req.Description,
		Status:      types.AnimalStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.AnimalDAO.Create(ctx, &item); err != nil {
		return nil, err
	}
	return toAnimal(&item), nil
}

func (s *AnimalService) Get(ctx context.Context, id uint64) (*types.Animal, error) {
	item, err := s.AnimalDAO.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, response.NewError(http.StatusNotFound, "动物不存在")
	}
	return toAnimal(item), nil
}

func toAnimal(item *models.Animal) *types.Animal {
	return &types.Animal{
		ID:          item.ID,
		UserID:      item.UserID,
		Name:        item.Name,
		Species:     item.Species,
		City:        item.City,
		CoverURL:    item.CoverURL,
		Description: item.Description,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
