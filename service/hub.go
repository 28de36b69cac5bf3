package service

import (
	"Pawmate/pkg/log"
	"Pawmate/types"
	"sync"
	"sync/atomic"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
)

// 订阅通道缓冲，写满时丢帧，消费方靠后续事件追平
const subscriberBuffer = 16

// Hub 进程内订阅分发器
// 读写两侧经 Redis 解耦后，由 watch 循环把事件回放到各主题
// 订阅关系归 Hub 所有，不使用包级回调注册表
type Hub struct {
	topics cmap.ConcurrentMap[string, *topicSubs]
	nextID atomic.Int64
}

type topicSubs struct {
	mu   sync.RWMutex
	subs map[int64]chan types.Event
}

func NewHub() *Hub {
	return &Hub{topics: cmap.New[*topicSubs]()}
}

// Subscribe 订阅主题，取消后通道关闭且不再有任何投递
func (h *Hub) Subscribe(topic string) (int64, <-chan types.Event) {
	id := h.nextID.Add(1)
	ch := make(chan types.Event, subscriberBuffer)
	h.topics.Upsert(topic, nil, func(exist bool, cur, _ *topicSubs) *topicSubs {
		if !exist || cur == nil {
			cur = &topicSubs{subs: make(map[int64]chan types.Event)}
		}
		cur.mu.Lock()
		cur.subs[id] = ch
		cur.mu.Unlock()
		return cur
	})
	return id, ch
}

// Unsubscribe 退订并关闭通道，主题无订阅者后移除
func (h *Hub) Unsubscribe(topic string, id int64) {
	h.topics.RemoveCb(topic, func(_ string, cur *topicSubs, exists bool) bool {
		if !exists || cur == nil {
			return false
		}
		cur.mu.Lock()
		if ch, ok := cur.subs[id]; ok {
			delete(cur.subs, id)
			close(ch)
		}
		empty := len(cur.subs) == 0
		cur.mu.Unlock()
		return empty
	})
}

// HasSubscribers 主题是否有订阅者，无人订阅时 watch 循环跳过回查
func (h *Hub) HasSubscribers(topic string) bool {
	cur, ok := h.topics.Get(topic)
	if !ok || cur == nil {
		return false
	}
	cur.mu.RLock()
	n := len(cur.subs)
	cur.mu.RUnlock()
	return n > 0
}

// Publish 向主题的所有订阅者投递，通道写满时丢帧
func (h *Hub) Publish(topic string, ev types.Event) {
	cur, ok := h.topics.Get(topic)
	if !ok || cur == nil {
		return
	}
	cur.mu.RLock()
	defer cur.mu.RUnlock()
	for id, ch := range cur.subs {
		select {
		case ch <- ev:
		default:
			log.L.Warn("watch subscriber too slow, drop event",
				zap.String("topic", topic), zap.Int64("subscriber", id))
		}
	}
}
