package models

import "time"

// Animal 动物信息
// 对应表 animals，ID 由雪花算法生成
type Animal struct {
	ID          uint64    `gorm:"column:id;primary_key" json:"id"`
	UserID      uint64    `gorm:"column:user_id;not null;index:idx_animals_userid_status" json:"user_id"`
	Name        string    `gorm:"column:name;type:varchar(100);not null;default:''" json:"name"`
	Species     string    `gorm:"column:species;type:varchar(32);not null;default:''" json:"species"`
	City        string    `gorm:"column:city;type:varchar(64);not null;default:''" json:"city"`
	CoverURL    string    `gorm:"column:cover_url;type:varchar(255);not null;default:''" json:"cover_url"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Status      int8      `gorm:"column:status;not null;default:1;index:idx_animals_userid_status" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;index:idx_animals_created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Animal) TableName() string { return "animals" }
