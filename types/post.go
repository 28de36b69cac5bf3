package types

import "time"

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

type Post struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    int8      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
