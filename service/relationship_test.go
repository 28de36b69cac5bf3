package service

import (
	"Pawmate/dao"
	"Pawmate/models"
	"Pawmate/types"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchCreatesMirrorPair(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	animal := seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))

	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	require.NotNil(t, userSide)
	assert.Equal(t, types.RelationshipPending, userSide.Status)
	// 用户侧携带创建时刻的动物快照
	assert.Equal(t, animal.Name, userSide.AnimalName)
	assert.Equal(t, animal.Species, userSide.Species)
	assert.Equal(t, animal.City, userSide.City)
	assert.Equal(t, animal.CoverURL, userSide.CoverURL)
	assert.Equal(t, animal.Status, userSide.AnimalStatus)

	animalSide, err := s.RelationshipDAO.GetAnimalSide(ctx, 200, 11)
	require.NoError(t, err)
	require.NotNil(t, animalSide)
	assert.Equal(t, types.RelationshipPending, animalSide.Status)
}

func TestNonMatchKindsDoNotTouchMirror(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindLove)))

	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	assert.Nil(t, userSide)
}

func TestMirrorFollowsMatchTransitions(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedAnimal(t, db, 200)
	ctx := context.Background()

	// love -> match 建立镜像
	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindLove)))
	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))
	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	require.NotNil(t, userSide)

	// match -> sad 撤销镜像
	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindSad)))
	userSide, err = s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	assert.Nil(t, userSide)
	animalSide, err := s.RelationshipDAO.GetAnimalSide(ctx, 200, 11)
	require.NoError(t, err)
	assert.Nil(t, animalSide)

	// 计数跟着走
	counters, err := s.GetCounters(ctx, types.EntityAnimal, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counters[types.KindMatch])
	assert.Equal(t, int64(1), counters[types.KindSad])
}

func TestClearMatchDeletesMirror(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))
	require.NoError(t, s.Apply(ctx, types.EntityAnimal, 200, 11, nil))

	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	assert.Nil(t, userSide)
}

func TestSetStatusUpdatesBothSides(t *testing.T) {
	db := newTestDB(t)
	rs := newTestReactionService(t, db)
	s := &RelationshipService{RelationshipDAO: dao.NewRelationshipDAO(db)}
	seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))
	require.NoError(t, s.SetStatus(ctx, 11, 200, types.RelationshipContacted))

	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	assert.Equal(t, types.RelationshipContacted, userSide.Status)
	animalSide, err := s.RelationshipDAO.GetAnimalSide(ctx, 200, 11)
	require.NoError(t, err)
	assert.Equal(t, types.RelationshipContacted, animalSide.Status)

	// 任意状态间可迁移，closed 之后还能回到 pending
	require.NoError(t, s.SetStatus(ctx, 11, 200, types.RelationshipClosed))
	require.NoError(t, s.SetStatus(ctx, 11, 200, types.RelationshipPending))
}

func TestSetStatusAbsentPairRejected(t *testing.T) {
	db := newTestDB(t)
	s := &RelationshipService{RelationshipDAO: dao.NewRelationshipDAO(db)}
	ctx := context.Background()

	err := s.SetStatus(ctx, 11, 200, types.RelationshipContacted)
	assert.Equal(t, http.StatusNotFound, bizCode(t, err))

	err = s.SetStatus(ctx, 11, 200, "adopted")
	assert.Equal(t, http.StatusBadRequest, bizCode(t, err))
}

func TestSetStatusAfterClearDoesNotResurrect(t *testing.T) {
	db := newTestDB(t)
	rs := newTestReactionService(t, db)
	s := &RelationshipService{RelationshipDAO: dao.NewRelationshipDAO(db)}
	seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))
	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, nil))

	err := s.SetStatus(ctx, 11, 200, types.RelationshipContacted)
	assert.Equal(t, http.StatusNotFound, bizCode(t, err))

	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	assert.Nil(t, userSide)
}

func TestRematchResetsToPending(t *testing.T) {
	db := newTestDB(t)
	rs := newTestReactionService(t, db)
	s := &RelationshipService{RelationshipDAO: dao.NewRelationshipDAO(db)}
	seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))
	require.NoError(t, s.SetStatus(ctx, 11, 200, types.RelationshipContacted))
	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, nil))
	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))

	// 重新 match 是一段新关系，状态回到 pending
	userSide, err := s.RelationshipDAO.GetUserSide(ctx, 11, 200)
	require.NoError(t, err)
	require.NotNil(t, userSide)
	assert.Equal(t, types.RelationshipPending, userSide.Status)
}

func TestListUserRelationships(t *testing.T) {
	db := newTestDB(t)
	rs := newTestReactionService(t, db)
	s := &RelationshipService{RelationshipDAO: dao.NewRelationshipDAO(db)}
	ctx := context.Background()

	for i := uint64(1); i <= 3; i++ {
		animal := seedAnimal(t, db, 200+i)
		require.NoError(t, rs.Apply(ctx, types.EntityAnimal, animal.ID, 11, strptr(types.KindMatch)))
	}
	// 用户维度隔离
	seedAnimal(t, db, 300)
	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 300, 99, strptr(types.KindMatch)))

	items, total, err := s.ListUserRelationships(ctx, 11, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)

	items, total, err = s.ListUserRelationships(ctx, 11, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)
}

func TestSnapshotFrozenAtMatchTime(t *testing.T) {
	db := newTestDB(t)
	rs := newTestReactionService(t, db)
	s := &RelationshipService{RelationshipDAO: dao.NewRelationshipDAO(db)}
	animal := seedAnimal(t, db, 200)
	ctx := context.Background()

	require.NoError(t, rs.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindMatch)))

	// 动物信息后续变化不回写快照
	require.NoError(t, db.Model(&models.Animal{}).Where("id = ?", animal.ID).
		Updates(map[string]any{"name": "改名了", "status": types.AnimalStatusAdopted, "updated_at": time.Now()}).Error)

	items, _, err := s.ListUserRelationships(ctx, 11, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "豆豆", items[0].AnimalName)
	assert.Equal(t, types.AnimalStatusOpen, items[0].AnimalStatus)
}
