package dao

import (
	"Pawmate/models"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserDAO struct {
	Repo[models.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{Repo: NewRepo[models.User](db)}
}

// GetByNickname 按昵称查询用户，不存在返回 nil
func (d *UserDAO) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var item models.User
	err := d.Db.WithContext(ctx).Where("nickname = ?", nickname).Limit(1).Find(&item).Error
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
