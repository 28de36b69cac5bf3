package models

import "time"

// Post 社区帖子
// 对应表 posts，ID 由雪花算法生成
type Post struct {
	ID        uint64    `gorm:"column:id;primary_key" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_posts_userid_status" json:"user_id"`
	Title     string    `gorm:"column:title;type:varchar(100);not null;default:''" json:"title"`
	Content   string    `gorm:"column:content;type:text" json:"content"`
	Status    int8      `gorm:"column:status;not null;default:1;index:idx_posts_userid_status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_posts_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }
