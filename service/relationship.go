package service

import (
	"Pawmate/dao"
	"Pawmate/pkg/log"
	"Pawmate/pkg/response"
	"Pawmate/types"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var _ IRelationshipService = (*RelationshipService)(nil)

type IRelationshipService interface {
	// SetStatus 同时写两侧镜像状态，镜像不存在时拒绝且不得重建
	SetStatus(ctx context.Context, userID, animalID uint64, status string) error
	ListUserRelationships(ctx context.Context, userID uint64, limit, offset int) ([]*types.UserRelationshipItem, int64, error)
}

type RelationshipService struct {
	RelationshipDAO *dao.RelationshipDAO
	Bus             *EventBus
}

func (s *RelationshipService) SetStatus(ctx context.Context, userID, animalID uint64, status string) error {
	if !types.ValidRelationshipStatus(status) {
		return response.NewError(http.StatusBadRequest, "不支持的关系状态")
	}

	// 先确认镜像存在，缺失时拒绝，绝不补建半边
	cur, err := s.RelationshipDAO.GetUserSide(ctx, userID, animalID)
	if err != nil {
		return err
	}
	if cur == nil {
		return response.NewError(http.StatusNotFound, "关系不存在")
	}

	// 两侧为独立的合并写，状态是用户驱动的 UI 态，不要求原子
	hit, err := s.RelationshipDAO.SetUserSideStatus(ctx, userID, animalID, status)
	if err != nil {
		return err
	}
	if !hit {
		return response.NewError(http.StatusNotFound, "关系不存在")
	}
	if _, err := s.RelationshipDAO.SetAnimalSideStatus(ctx, animalID, userID, status); err != nil {
		return err
	}

	ev := &types.RelationshipEvent{
		AnimalID:   animalID,
		UserID:     userID,
		Action:     types.RelationshipStatusChanged,
		Status:     status,
		OccurredAt: time.Now(),
	}
	if err := s.Bus.PublishRelationship(ctx, ev); err != nil {
		log.L.Error("publish relationship event", zap.Error(err))
	}
	return nil
}

func (s *RelationshipService) ListUserRelationships(ctx context.Context, userID uint64, limit, offset int) ([]*types.UserRelationshipItem, int64, error) {
	if limit <= 0 {
		limit = types.DefaultPageSize
	}
	items, total, err := s.RelationshipDAO.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	result := make([]*types.UserRelationshipItem, 0, len(items))
	for _, item := range items {
		result = append(result, &types.UserRelationshipItem{
			AnimalID:     item.AnimalID,
			Status:       item.Status,
			AnimalName:   item.AnimalName,
			Species:      item.Species,
			City:         item.City,
			CoverURL:     item.CoverURL,
			AnimalStatus: item.AnimalStatus,
			CreatedAt:    item.CreatedAt,
		})
	}
	return result, total, nil
}
