package models

import "time"

// Reaction 反应记录
// 对应表 reactions
// 唯一键: entity_type + entity_id + user_id，存在即表示该用户当前有生效反应
// kind 取值由 types 中实体配置约束
type Reaction struct {
	ID         uint64    `gorm:"column:id;primary_key;AUTO_INCREMENT" json:"id"`
	EntityType string    `gorm:"column:entity_type;type:varchar(16);not null;uniqueIndex:uk_entity_user,priority:1;index:idx_entity_updated,priority:1" json:"entity_type"`
	EntityID   uint64    `gorm:"column:entity_id;not null;uniqueIndex:uk_entity_user,priority:2;index:idx_entity_updated,priority:2" json:"entity_id"`
	UserID     uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_entity_user,priority:3" json:"user_id"`
	Kind       string    `gorm:"column:kind;type:varchar(16);not null" json:"kind"`
	CreatedAt  time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;index:idx_entity_updated,priority:3" json:"updated_at"`
}

func (Reaction) TableName() string { return "reactions" }
