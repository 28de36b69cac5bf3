package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReactionStats 实体反应计数
// 对应表 reaction_stats，每实体一行
// counters 为 kind -> 数量 的 JSON，各项 >= 0
// version 乐观锁版本号，只由反应事务协议修改
type ReactionStats struct {
	EntityType string                               `gorm:"column:entity_type;type:varchar(16);primaryKey" json:"entity_type"`
	EntityID   uint64                               `gorm:"column:entity_id;primaryKey" json:"entity_id"`
	Counters   datatypes.JSONType[map[string]int64] `gorm:"column:counters" json:"counters"`
	Version    int64                                `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt  time.Time                            `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time                            `gorm:"column:updated_at" json:"updated_at"`
}

func (ReactionStats) TableName() string { return "reaction_stats" }
