package service

import (
	"Pawmate/pkg/log"
	"Pawmate/types"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

var _ IWatchService = (*WatchService)(nil)

// IWatchService 读侧实时订阅
// 每个订阅先收到一帧当前快照，之后随写侧事件推送增量快照
type IWatchService interface {
	Start(ctx context.Context) error
	WatchCounters(ctx context.Context, entityType string, entityID uint64) *Subscription
	WatchMyReaction(ctx context.Context, entityType string, entityID, userID uint64) *Subscription
	WatchReactors(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) *Subscription
	WatchUserRelationships(ctx context.Context, userID uint64, limit int) *Subscription
}

// Subscription 一路订阅，Close 后通道关闭且不再有任何推送
type Subscription struct {
	Topic  string
	C      <-chan types.WatchEvent
	cancel func()
}

func (s *Subscription) Close() {
	s.cancel()
}

type WatchService struct {
	Redis               *redis.Client
	Hub                 *Hub
	ReactionService     IReactionService
	RelationshipService IRelationshipService

	wg conc.WaitGroup
}

// Start 消费写侧事件并回放到本进程的订阅者，随 ctx 结束
func (w *WatchService) Start(ctx context.Context) error {
	sub := w.Redis.Subscribe(ctx, eventChannel)
	defer sub.Close()
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev types.Event
			if !ev.Decode([]byte(msg.Payload)) {
				log.L.Warn("drop malformed watch event", zap.String("payload", msg.Payload))
				continue
			}
			w.dispatch(ev)
		}
	}
}

// Wait 等待所有订阅者协程退出（订阅方需先全部 Close）
func (w *WatchService) Wait() {
	w.wg.Wait()
}

// dispatch 把一条写侧事件投递到受影响的主题
func (w *WatchService) dispatch(ev types.Event) {
	switch ev.Type {
	case types.EventReaction:
		r := ev.Reaction
		w.Hub.Publish(TopicCounters(r.EntityType, r.EntityID), ev)
		w.Hub.Publish(TopicMyReaction(r.EntityType, r.EntityID, r.UserID), ev)
		w.Hub.Publish(TopicReactors(r.EntityType, r.EntityID), ev)
	case types.EventRelationship:
		w.Hub.Publish(TopicRelationships(ev.Relationship.UserID), ev)
	}
}

func (w *WatchService) WatchCounters(ctx context.Context, entityType string, entityID uint64) *Subscription {
	topic := TopicCounters(entityType, entityID)
	return w.watch(ctx, topic, func(ctx context.Context) (*types.WatchEvent, error) {
		counters, err := w.ReactionService.GetCounters(ctx, entityType, entityID)
		if err != nil {
			return nil, err
		}
		var payload interface{}
		if counters != nil {
			payload = &types.CountersResponse{EntityType: entityType, EntityID: entityID, Counters: counters}
		}
		return &types.WatchEvent{Topic: topic, Type: types.WatchCounters, Payload: payload}, nil
	})
}

func (w *WatchService) WatchMyReaction(ctx context.Context, entityType string, entityID, userID uint64) *Subscription {
	topic := TopicMyReaction(entityType, entityID, userID)
	return w.watch(ctx, topic, func(ctx context.Context) (*types.WatchEvent, error) {
		kind, err := w.ReactionService.GetMyReaction(ctx, entityType, entityID, userID)
		if err != nil {
			return nil, err
		}
		return &types.WatchEvent{Topic: topic, Type: types.WatchMyReaction, Payload: kind}, nil
	})
}

func (w *WatchService) WatchReactors(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) *Subscription {
	topic := TopicReactors(entityType, entityID)
	return w.watch(ctx, topic, func(ctx context.Context) (*types.WatchEvent, error) {
		items, err := w.ReactionService.ListReactors(ctx, entityType, entityID, kind, limit, desc)
		if err != nil {
			return nil, err
		}
		return &types.WatchEvent{Topic: topic, Type: types.WatchReactors, Payload: items}, nil
	})
}

func (w *WatchService) WatchUserRelationships(ctx context.Context, userID uint64, limit int) *Subscription {
	topic := TopicRelationships(userID)
	return w.watch(ctx, topic, func(ctx context.Context) (*types.WatchEvent, error) {
		items, total, err := w.RelationshipService.ListUserRelationships(ctx, userID, limit, 0)
		if err != nil {
			return nil, err
		}
		return &types.WatchEvent{Topic: topic, Type: types.WatchRelationships, Payload: &types.ListRelationshipsResponse{
			Items:   items,
			Total:   total,
			HasMore: int64(len(items)) < total,
		}}, nil
	})
}

// watch 建立一路订阅：先推当前快照，此后每条事件触发一次回查再推送
func (w *WatchService) watch(ctx context.Context, topic string, compute func(context.Context) (*types.WatchEvent, error)) *Subscription {
	id, ch := w.Hub.Subscribe(topic)
	out := make(chan types.WatchEvent, subscriberBuffer)
	sub := &Subscription{
		Topic:  topic,
		C:      out,
		cancel: func() { w.Hub.Unsubscribe(topic, id) },
	}

	initial, err := compute(ctx)
	if err != nil {
		log.L.Error("watch initial snapshot", zap.String("topic", topic), zap.Error(err))
	}

	w.wg.Go(func() {
		defer close(out)
		if initial != nil {
			out <- *initial
		}
		for range ch {
			ev, err := compute(context.Background())
			if err != nil {
				log.L.Error("watch recompute", zap.String("topic", topic), zap.Error(err))
				continue
			}
			select {
			case out <- *ev:
			default:
				log.L.Warn("watch consumer too slow, drop frame", zap.String("topic", topic))
			}
		}
	})
	return sub
}

// 主题名由读写两侧共享
func TopicCounters(entityType string, entityID uint64) string {
	return fmt.Sprintf("counters:%s:%d", entityType, entityID)
}

func TopicMyReaction(entityType string, entityID, userID uint64) string {
	return fmt.Sprintf("myreaction:%s:%d:%d", entityType, entityID, userID)
}

func TopicReactors(entityType string, entityID uint64) string {
	return fmt.Sprintf("reactors:%s:%d", entityType, entityID)
}

func TopicRelationships(userID uint64) string {
	return fmt.Sprintf("relationships:%d", userID)
}
