package models

import "time"

type User struct {
	ID        uint64    `gorm:"column:id;primary_key" json:"id"`
	Nickname  string    `gorm:"column:nickname;type:varchar(64);not null;uniqueIndex:uk_nickname" json:"nickname"`
	Avatar    string    `gorm:"column:avatar;type:varchar(255);not null;default:''" json:"avatar"`
	City      string    `gorm:"column:city;type:varchar(64);not null;default:''" json:"city"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
