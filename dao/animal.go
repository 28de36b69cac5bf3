package dao

import (
	"Pawmate/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type AnimalDAO struct {
	Repo[models.Animal]
}

func NewAnimalDAO(db *gorm.DB) *AnimalDAO {
	return &AnimalDAO{Repo: NewRepo[models.Animal](db)}
}

// WithTx 返回绑定事务连接的副本
func (d *AnimalDAO) WithTx(tx *gorm.DB) *AnimalDAO {
	return &AnimalDAO{Repo: d.Repo.WithTx(tx)}
}

// GetByID 查询动物信息，不存在返回 nil
func (d *AnimalDAO) GetByID(ctx context.Context, id uint64) (*models.Animal, error) {
	var item models.Animal
	err := d.Db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&item).Error
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
