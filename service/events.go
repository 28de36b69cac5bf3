package service

import (
	"Pawmate/types"
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// 写侧变更事件的 Redis 信道，多实例部署时各实例的 watch 循环都能看到
const eventChannel = "pawmate:events"

// EventBus 把写侧提交后的变更广播给读侧
type EventBus struct {
	Redis *redis.Client
}

func NewEventBus(rds *redis.Client) *EventBus {
	return &EventBus{Redis: rds}
}

func (b *EventBus) PublishReaction(ctx context.Context, ev *types.ReactionEvent) error {
	return b.publish(ctx, &types.Event{Type: types.EventReaction, Reaction: ev})
}

func (b *EventBus) PublishRelationship(ctx context.Context, ev *types.RelationshipEvent) error {
	return b.publish(ctx, &types.Event{Type: types.EventRelationship, Relationship: ev})
}

func (b *EventBus) publish(ctx context.Context, ev *types.Event) error {
	if b == nil || b.Redis == nil {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.Redis.Publish(ctx, eventChannel, body).Err()
}
