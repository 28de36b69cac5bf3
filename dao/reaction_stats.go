package dao

import (
	"Pawmate/models"
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReactionStatsDAO struct {
	Repo[models.ReactionStats]
}

func NewReactionStatsDAO(db *gorm.DB) *ReactionStatsDAO {
	return &ReactionStatsDAO{Repo: NewRepo[models.ReactionStats](db)}
}

// WithTx 返回绑定事务连接的副本
func (d *ReactionStatsDAO) WithTx(tx *gorm.DB) *ReactionStatsDAO {
	return &ReactionStatsDAO{Repo: d.Repo.WithTx(tx)}
}

// GetByEntity 读取实体的计数行，不存在返回 nil
func (d *ReactionStatsDAO) GetByEntity(ctx context.Context, entityType string, entityID uint64) (*models.ReactionStats, error) {
	var item models.ReactionStats
	err := d.Db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Limit(1).Find(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if item.EntityID == 0 {
		return nil, nil
	}
	return &item, nil
}

// CreateGuarded 首次反应时建行，并发建行撞唯一键时返回 ErrStatsConflict
func (d *ReactionStatsDAO) CreateGuarded(ctx context.Context, entityType string, entityID uint64, counters map[string]int64) error {
	now := time.Now()
	item := models.ReactionStats{
		EntityType: entityType,
		EntityID:   entityID,
		Counters:   datatypes.NewJSONType(counters),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := d.Db.WithContext(ctx).Create(&item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrStatsConflict
	}
	return err
}

// UpdateGuarded 按版本号做乐观更新，版本不匹配返回 ErrStatsConflict
func (d *ReactionStatsDAO) UpdateGuarded(ctx context.Context, entityType string, entityID uint64, version int64, counters map[string]int64) error {
	res := d.Db.WithContext(ctx).Model(&models.ReactionStats{}).
		Where("entity_type = ? AND entity_id = ? AND version = ?", entityType, entityID, version).
		Updates(map[string]any{
			"counters":   datatypes.NewJSONType(counters),
			"version":    version + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatsConflict
	}
	return nil
}
