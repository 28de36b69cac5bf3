package dao

import (
	"Pawmate/models"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type ReactionDAO struct {
	Repo[models.Reaction]
}

func NewReactionDAO(db *gorm.DB) *ReactionDAO {
	return &ReactionDAO{Repo: NewRepo[models.Reaction](db)}
}

// WithTx 返回绑定事务连接的副本
func (d *ReactionDAO) WithTx(tx *gorm.DB) *ReactionDAO {
	return &ReactionDAO{Repo: d.Repo.WithTx(tx)}
}

// GetByEntityUser 查询指定用户对指定实体的反应记录
func (d *ReactionDAO) GetByEntityUser(ctx context.Context, entityType string, entityID, userID uint64) (*models.Reaction, error) {
	var item models.Reaction
	err := d.Db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND user_id = ?", entityType, entityID, userID).
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

// Upsert 写入反应，已存在时只更新 kind 与 updated_at，保留 created_at
func (d *ReactionDAO) Upsert(ctx context.Context, entityType string, entityID, userID uint64, kind string) error {
	now := time.Now()
	cur, err := d.GetByEntityUser(ctx, entityType, entityID, userID)
	if err != nil {
		return err
	}
	if cur == nil {
		item := models.Reaction{
			EntityType: entityType,
			EntityID:   entityID,
			UserID:     userID,
			Kind:       kind,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return d.Db.WithContext(ctx).Create(&item).Error
	}
	return d.Db.WithContext(ctx).Model(&models.Reaction{}).
		Where("id = ?", cur.ID).
		Updates(map[string]any{"kind": kind, "updated_at": now}).Error
}

// Delete 删除反应记录，记录不存在视为成功
func (d *ReactionDAO) Delete(ctx context.Context, entityType string, entityID, userID uint64) error {
	return d.Db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND user_id = ?", entityType, entityID, userID).
		Delete(&models.Reaction{}).Error
}

// CountByEntityKind 按 kind 统计某实体的反应记录数（对账用）
func (d *ReactionDAO) CountByEntityKind(ctx context.Context, entityType string, entityID uint64, kind string) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).Model(&models.Reaction{}).
		Where("entity_type = ? AND entity_id = ? AND kind = ?", entityType, entityID, kind).
		Count(&count).Error
	return count, err
}

// ListOrdered 按 updated_at 排序查询实体的反应记录
// MySQL 上强制使用 idx_entity_updated，索引缺失时返回 ErrIndexUnavailable
// kind 为空表示不过滤
func (d *ReactionDAO) ListOrdered(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) ([]*models.Reaction, error) {
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	items := make([]*models.Reaction, 0, limit)

	if d.Db.Dialector.Name() == "mysql" {
		sql := "SELECT * FROM reactions FORCE INDEX (idx_entity_updated) WHERE entity_type = ? AND entity_id = ?"
		args := []interface{}{entityType, entityID}
		if kind != "" {
			sql += " AND kind = ?"
			args = append(args, kind)
		}
		sql += " ORDER BY updated_at " + dir + " LIMIT ?"
		args = append(args, limit)
		err := d.Db.WithContext(ctx).Raw(sql, args...).Scan(&items).Error
		if isIndexMissing(err) {
			return nil, ErrIndexUnavailable
		}
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	q := d.Db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Order("updated_at " + dir).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListUnordered 无序查询，排序交给调用方在内存中完成
func (d *ReactionDAO) ListUnordered(ctx context.Context, entityType string, entityID uint64, kind string, limit int) ([]*models.Reaction, error) {
	items := make([]*models.Reaction, 0, limit)
	q := d.Db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
