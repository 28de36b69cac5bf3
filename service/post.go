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

var _ IPostService = (*PostService)(nil)

type IPostService interface {
	Create(ctx context.Context, userID uint64, req *types.CreatePostRequest) (*types.Post, error)
	Get(ctx context.Context, id uint64) (*types.Post, error)
}

type PostService struct {
	PostDAO *dao.PostDAO
}

func (s *PostService) Create(ctx context.Context, userID uint64, req *types.CreatePostRequest) (*types.Post, error) {
	now := time.Now()
	item := models.Post{
		ID:        uint64(snowflake.GenID()),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Status:    1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.PostDAO.Create(ctx, &item); err != nil {
		return nil, err
	}
	return toPost(&item), nil
}

func (s *PostService) Get(ctx context.Context, id uint64) (*types.Post, error) {
	item, err := s.PostDAO.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, response.NewError(http.StatusNotFound, "帖子不存在")
	}
	return toPost(item), nil
}

func toPost(item *models.Post) *types.Post {
	return &types.Post{
		ID:        item.ID,
		UserID:    item.UserID,
		Title:     item.Title,
		Content:   item.Content,
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
