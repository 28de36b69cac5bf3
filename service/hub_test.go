package service

import (
	"Pawmate/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishSubscribe(t *testing.T) {
	h := NewHub()
	topic := TopicCounters(types.EntityPost, 100)

	id, ch := h.Subscribe(topic)
	assert.True(t, h.HasSubscribers(topic))

	ev := types.Event{Type: types.EventReaction, Reaction: &types.ReactionEvent{EntityID: 100}}
	h.Publish(topic, ev)

	select {
	case got := <-ch:
		assert.Equal(t, types.EventReaction, got.Type)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	h.Unsubscribe(topic, id)
	assert.False(t, h.HasSubscribers(topic))

	// 退订后通道关闭
	_, open := <-ch
	assert.False(t, open)
}

func TestHubTopicsIsolated(t *testing.T) {
	h := NewHub()
	idA, chA := h.Subscribe(TopicCounters(types.EntityPost, 1))
	idB, chB := h.Subscribe(TopicCounters(types.EntityPost, 2))
	defer h.Unsubscribe(TopicCounters(types.EntityPost, 1), idA)
	defer h.Unsubscribe(TopicCounters(types.EntityPost, 2), idB)

	h.Publish(TopicCounters(types.EntityPost, 1), types.Event{Type: types.EventReaction, Reaction: &types.ReactionEvent{EntityID: 1}})

	select {
	case <-chA:
	case <-time.After(time.Second):
		t.Fatal("subscriber A should receive")
	}
	select {
	case <-chB:
		t.Fatal("subscriber B should not receive")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubSlowSubscriberDropsNotBlocks(t *testing.T) {
	h := NewHub()
	topic := TopicCounters(types.EntityPost, 1)
	id, ch := h.Subscribe(topic)
	defer h.Unsubscribe(topic, id)

	// 无人消费时写满缓冲后丢帧，Publish 不能阻塞
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			h.Publish(topic, types.Event{Type: types.EventReaction, Reaction: &types.ReactionEvent{}})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestHubUnsubscribeTwice(t *testing.T) {
	h := NewHub()
	topic := TopicRelationships(11)
	id, _ := h.Subscribe(topic)
	h.Unsubscribe(topic, id)
	require.NotPanics(t, func() { h.Unsubscribe(topic, id) })
}
