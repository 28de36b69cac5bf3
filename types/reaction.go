package types

import "time"

// 实体类型
const (
	EntityAnimal = "animal"
	EntityPost   = "post"
)

// 反应类型
const (
	KindLove  = "love"
	KindSad   = "sad"
	KindLike  = "like"
	KindMatch = "match"
)

// EntityKindSet 实体的反应配置
// Distinguished 为空表示该实体不开启关系镜像
type EntityKindSet struct {
	Kinds         map[string]struct{}
	Distinguished string
}

var entityKinds = map[string]EntityKindSet{
	EntityAnimal: {
		Kinds: map[string]struct{}{
			KindLove:  {},
			KindSad:   {},
			KindMatch: {},
		},
		Distinguished: KindMatch,
	},
	EntityPost: {
		Kinds: map[string]struct{}{
			KindLove: {},
			KindSad:  {},
			KindLike: {},
		},
	},
}

// ValidEntityType 是否为已注册的实体类型
func ValidEntityType(entityType string) bool {
	_, ok := entityKinds[entityType]
	return ok
}

// ValidKind 反应类型是否对该实体合法
func ValidKind(entityType, kind string) bool {
	set, ok := entityKinds[entityType]
	if !ok {
		return false
	}
	_, ok = set.Kinds[kind]
	return ok
}

// DistinguishedKind 返回触发关系镜像的反应类型
func DistinguishedKind(entityType string) (string, bool) {
	set, ok := entityKinds[entityType]
	if !ok || set.Distinguished == "" {
		return "", false
	}
	return set.Distinguished, true
}

type SetReactionRequest struct {
	Kind   string `json:"kind" binding:"required"`
	UserID uint64 `json:"user_id"` // 可选，用于校验与登录身份一致
}

type ClearReactionRequest struct {
	UserID uint64 `json:"user_id"`
}

type ListReactorsRequest struct {
	Kind     string `form:"kind"`
	PageSize int    `form:"pageSize"`
	Order    string `form:"order"` // desc(默认) | asc
}

type Reactor struct {
	UserID    uint64    `json:"user_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CountersResponse struct {
	EntityType string           `json:"entity_type"`
	EntityID   uint64           `json:"entity_id"`
	Counters   map[string]int64 `json:"counters"`
}

// ReactionEvent 写侧提交后的变更事件
type ReactionEvent struct {
	EntityType string    `json:"entity_type"`
	EntityID   uint64    `json:"entity_id"`
	UserID     uint64    `json:"user_id"`
	Prev       *string   `json:"prev"`
	Next       *string   `json:"next"`
	OccurredAt time.Time `json:"occurred_at"`
}
