package dao

import (
	"Pawmate/models"
	"Pawmate/types"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type RelationshipDAO struct {
	Repo[models.UserRelationship]
}

func NewRelationshipDAO(db *gorm.DB) *RelationshipDAO {
	return &RelationshipDAO{Repo: NewRepo[models.UserRelationship](db)}
}

// WithTx 返回绑定事务连接的副本
func (d *RelationshipDAO) WithTx(tx *gorm.DB) *RelationshipDAO {
	return &RelationshipDAO{Repo: d.Repo.WithTx(tx)}
}

// CreatePair 双侧建立关系镜像，初始状态 pending
// 用户侧携带创建时刻的动物快照
func (d *RelationshipDAO) CreatePair(ctx context.Context, animal *models.Animal, userID uint64) error {
	now := time.Now()
	animalSide := models.AnimalRelationship{
		AnimalID:  animal.ID,
		UserID:    userID,
		Status:    types.RelationshipPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.Db.WithContext(ctx).Create(&animalSide).Error; err != nil {
		return err
	}
	userSide := models.UserRelationship{
		UserID:       userID,
		AnimalID:     animal.ID,
		Status:       types.RelationshipPending,
		AnimalName:   animal.Name,
		Species:      animal.Species,
		City:         animal.City,
		CoverURL:     animal.CoverURL,
		AnimalStatus: animal.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return d.Db.WithContext(ctx).Create(&userSide).Error
}

// DeletePair 双侧删除关系镜像，记录不存在视为成功
func (d *RelationshipDAO) DeletePair(ctx context.Context, animalID, userID uint64) error {
	if err := d.Db.WithContext(ctx).
		Where("animal_id = ? AND user_id = ?", animalID, userID).
		Delete(&models.AnimalRelationship{}).Error; err != nil {
		return err
	}
	return d.Db.WithContext(ctx).
		Where("user_id = ? AND animal_id = ?", userID, animalID).
		Delete(&models.UserRelationship{}).Error
}

// GetUserSide 查询用户侧关系记录
func (d *RelationshipDAO) GetUserSide(ctx context.Context, userID, animalID uint64) (*models.UserRelationship, error) {
	var item models.UserRelationship
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND animal_id = ?", userID, animalID).
		Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// GetAnimalSide 查询动物侧关系记录
func (d *RelationshipDAO) GetAnimalSide(ctx context.Context, animalID, userID uint64) (*models.AnimalRelationship, error) {
	var item models.AnimalRelationship
	err := d.Db.WithContext(ctx).
		Where("animal_id = ? AND user_id = ?", animalID, userID).
		Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, nil
	}
	return &item, nil
}

// SetUserSideStatus 更新用户侧状态，返回是否命中记录
func (d *RelationshipDAO) SetUserSideStatus(ctx context.Context, userID, animalID uint64, status string) (bool, error) {
	res := d.Db.WithContext(ctx).Model(&models.UserRelationship{}).
		Where("user_id = ? AND animal_id = ?", userID, animalID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

// SetAnimalSideStatus 更新动物侧状态，返回是否命中记录
func (d *RelationshipDAO) SetAnimalSideStatus(ctx context.Context, animalID, userID uint64, status string) (bool, error) {
	res := d.Db.WithContext(ctx).Model(&models.AnimalRelationship{}).
		Where("animal_id = ? AND user_id = ?", animalID, userID).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

// ListByUser 查询用户的关系列表（按创建时间倒序）
func (d *RelationshipDAO) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*models.UserRelationship, int64, error) {
	var total int64
	err := d.Db.WithContext(ctx).Model(&models.UserRelationship{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	items := make([]*models.UserRelationship, 0, limit)
	err = d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}
