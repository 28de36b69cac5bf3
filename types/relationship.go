package types

import "time"

// 关系状态 由用户行为驱动，任意状态间可迁移
const (
	RelationshipPending   = "pending"
	RelationshipContacted = "contacted"
	RelationshipClosed    = "closed"
)

// ValidRelationshipStatus 是否为合法的关系状态
func ValidRelationshipStatus(status string) bool {
	switch status {
	case RelationshipPending, RelationshipContacted, RelationshipClosed:
		return true
	}
	return false
}

type SetRelationshipStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListRelationshipsRequest struct {
	PageSize int `form:"pageSize"`
	Page     int `form:"page"`
}

// UserRelationshipItem 用户侧关系记录，带创建时刻的动物快照
type UserRelationshipItem struct {
	AnimalID     uint64    `json:"animal_id"`
	Status       string    `json:"status"`
	AnimalName   string    `json:"animal_name"`
	Species      string    `json:"species"`
	City         string    `json:"city"`
	CoverURL     string    `json:"cover_url"`
	AnimalStatus int8      `json:"animal_status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListRelationshipsResponse struct {
	Items   []*UserRelationshipItem `json:"items"`
	Total   int64                   `json:"total"`
	HasMore bool                    `json:"has_more"`
}

// RelationshipEvent 关系镜像的变更事件
type RelationshipEvent struct {
	AnimalID   uint64    `json:"animal_id"`
	UserID     uint64    `json:"user_id"`
	Action     string    `json:"action"` // created | deleted | status_changed
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// 关系事件 action
const (
	RelationshipCreated       = "created"
	RelationshipDeleted       = "deleted"
	RelationshipStatusChanged = "status_changed"
)
