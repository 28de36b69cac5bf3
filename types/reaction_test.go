package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidKindPerEntity(t *testing.T) {
	assert.True(t, ValidKind(EntityAnimal, KindMatch))
	assert.True(t, ValidKind(EntityAnimal, KindLove))
	assert.False(t, ValidKind(EntityAnimal, KindLike))
	assert.True(t, ValidKind(EntityPost, KindLike))
	assert.False(t, ValidKind(EntityPost, KindMatch))
	assert.False(t, ValidKind("toy", KindLove))
}

func TestDistinguishedKind(t *testing.T) {
	dk, ok := DistinguishedKind(EntityAnimal)
	require.True(t, ok)
	assert.Equal(t, KindMatch, dk)

	_, ok = DistinguishedKind(EntityPost)
	assert.False(t, ok)
}

func TestEventDecode(t *testing.T) {
	body, err := json.Marshal(&Event{Type: EventReaction, Reaction: &ReactionEvent{EntityType: EntityPost, EntityID: 1}})
	require.NoError(t, err)

	var ev Event
	require.True(t, ev.Decode(body))
	assert.Equal(t, uint64(1), ev.Reaction.EntityID)

	// 形状不对的信封直接拒绝
	var bad Event
	assert.False(t, bad.Decode([]byte(`{"type":"reaction"}`)))
	assert.False(t, bad.Decode([]byte(`{"type":"unknown"}`)))
	assert.False(t, bad.Decode([]byte(`not json`)))
}
