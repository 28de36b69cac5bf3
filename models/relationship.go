package models

import "time"

// AnimalRelationship 动物侧关系记录
// 对应表 animal_relationships
// 唯一键: animal_id + user_id，与用户侧记录成对出现
// status: pending / contacted / closed
type AnimalRelationship struct {
	ID        uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	AnimalID  uint64    `gorm:"column:animal_id;not null;uniqueIndex:uk_animal_user,priority:1" json:"animal_id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_animal_user,priority:2" json:"user_id"`
	Status    string    `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (AnimalRelationship) TableName() string { return "animal_relationships" }

// UserRelationship 用户侧关系记录
// 对应表 user_relationships
// 携带创建时刻的动物快照，后续不随动物资料变更同步
type UserRelationship struct {
	ID           uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	UserID       uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_user_animal,priority:1;index:idx_user_created,priority:1" json:"user_id"`
	AnimalID     uint64    `gorm:"column:animal_id;not null;uniqueIndex:uk_user_animal,priority:2" json:"animal_id"`
	Status       string    `gorm:"column:status;type:varchar(16);not null;default:'pending'" json:"status"`
	AnimalName   string    `gorm:"column:animal_name;type:varchar(100);not null;default:''" json:"animal_name"`
	Species      string    `gorm:"column:species;type:varchar(32);not null;default:''" json:"species"`
	City         string    `gorm:"column:city;type:varchar(64);not null;default:''" json:"city"`
	CoverURL     string    `gorm:"column:cover_url;type:varchar(255);not null;default:''" json:"cover_url"`
	AnimalStatus int8      `gorm:"column:animal_status;not null;default:0" json:"animal_status"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:idx_user_created,priority:2" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (UserRelationship) TableName() string { return "user_relationships" }
