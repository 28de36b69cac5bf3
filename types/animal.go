package types

import "time"

// 动物领养状态
const (
	AnimalStatusOff      int8 = 0 // 已下架
	AnimalStatusOpen     int8 = 1 // 待领养
	AnimalStatusAdopted  int8 = 2 // 已领养
	AnimalStatusReserved int8 = 3 // 已预定
)

type CreateAnimalRequest struct {
	Name        string `json:"name" binding:"required"`
	Species     string `json:"species" binding:"required"`
	City        string `json:"city"`
	CoverURL    string `json:"cover_url"`
	Description string `json:"description"`
}

type Animal struct {
	ID          uint64    `json:"id"`
	UserID      uint64    `json:"user_id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	City        string    `json:"city"`
	CoverURL    string    `json:"cover_url"`
	Description string    `json:"description"`
	Status      int8      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
