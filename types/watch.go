package types

import "encoding/json"

// watch 事件类型
const (
	WatchCounters      = "counters"
	WatchMyReaction    = "my_reaction"
	WatchReactors      = "reactors"
	WatchRelationships = "relationships"
)

// WatchEvent 推送给订阅方的一帧
// Payload 为对应事件类型的响应结构
type WatchEvent struct {
	Topic   string      `json:"topic"`
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event Redis Pub/Sub 信道上的事件信封
// 按 Type 取对应字段，其余为 nil，读侧在解码处校验
type Event struct {
	Type         string             `json:"type"` // reaction | relationship
	Reaction     *ReactionEvent     `json:"reaction,omitempty"`
	Relationship *RelationshipEvent `json:"relationship,omitempty"`
}

// 事件信封 type
const (
	EventReaction     = "reaction"
	EventRelationship = "relationship"
)

// Decode 解析事件信封，形状不合法时返回 false
func (e *Event) Decode(body []byte) bool {
	if err := json.Unmarshal(body, e); err != nil {
		return false
	}
	switch e.Type {
	case EventReaction:
		return e.Reaction != nil
	case EventRelationship:
		return e.Relationship != nil
	}
	return false
}

// WatchSubscribeRequest WebSocket 订阅指令
type WatchSubscribeRequest struct {
	Action     string `json:"action"` // subscribe | unsubscribe
	Type       string `json:"type"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   uint64 `json:"entity_id,omitempty"`
	Kind       string `json:"kind,omitempty"`
	PageSize   int    `json:"pageSize,omitempty"`
	Order      string `json:"order,omitempty"`
}
