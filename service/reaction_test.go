package service

import (
	"Pawmate/dao"
	"Pawmate/models"
	"Pawmate/pkg/response"
	"Pawmate/types"
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pawmate.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Animal{},
		&models.Post{},
		&models.Reaction{},
		&models.ReactionStats{},
		&models.AnimalRelationship{},
		&models.UserRelationship{},
	))
	return db
}

func newTestReactionService(t *testing.T, db *gorm.DB) *ReactionService {
	t.Helper()
	return &ReactionService{
		Db:              db,
		ReactionDAO:     dao.NewReactionDAO(db),
		StatsDAO:        dao.NewReactionStatsDAO(db),
		RelationshipDAO: dao.NewRelationshipDAO(db),
		AnimalDAO:       dao.NewAnimalDAO(db),
		PostDAO:         dao.NewPostDAO(db),
	}
}

func seedAnimal(t *testing.T, db *gorm.DB, id uint64) *models.Animal {
	t.Helper()
	now := time.Now()
	item := &models.Animal{
		ID:        id,
		UserID:    1,
		Name:      "豆豆",
		Species:   "cat",
		City:      "hangzhou",
		CoverURL:  "https://img.example.com/doudou.jpg",
		Status:    types.AnimalStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedPost(t *testing.T, db *gorm.DB, id uint64) *models.Post {
	t.Helper()
	now := time.Now()
	item := &models.Post{
		ID:        id,
		UserID:    1,
		Title:     "领养日记",
		Content:   "第一天",
		Status:    1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func strptr(s string) *string { return &s }

func bizCode(t *testing.T, err error) int {
	t.Helper()
	var be *response.BizError
	require.ErrorAs(t, err, &be)
	return be.Code
}

func TestApplySetUpdatesCounters(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 12, strptr(types.KindLove)))
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 13, strptr(types.KindSad)))

	counters, err := s.GetCounters(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters[types.KindLove])
	assert.Equal(t, int64(1), counters[types.KindSad])
}

func TestApplyIdempotent(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))

	before, err := s.StatsDAO.GetByEntity(ctx, types.EntityPost, 100)
	require.NoError(t, err)

	// 同一目标状态重复提交不产生任何写入
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))

	after, err := s.StatsDAO.GetByEntity(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, int64(1), after.Counters.Data()[types.KindLove])

	// 清除不存在的反应同样是 no-op
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 99, nil))
	after2, err := s.StatsDAO.GetByEntity(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, after.Version, after2.Version)
}

func TestApplySwitchKind(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindSad)))

	counters, err := s.GetCounters(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counters[types.KindLove])
	assert.Equal(t, int64(1), counters[types.KindSad])

	kind, err := s.GetMyReaction(ctx, types.EntityPost, 100, 11)
	require.NoError(t, err)
	require.NotNil(t, kind)
	assert.Equal(t, types.KindSad, *kind)
}

func TestApplyClearRoundTrip(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, nil))

	counters, err := s.GetCounters(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counters[types.KindLove])

	kind, err := s.GetMyReaction(ctx, types.EntityPost, 100, 11)
	require.NoError(t, err)
	assert.Nil(t, kind)
}

func TestApplyAtMostOnePerUser(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	for _, k := range []string{types.KindLove, types.KindSad, types.KindLike, types.KindLove} {
		require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(k)))
	}

	var rows int64
	require.NoError(t, db.Model(&models.Reaction{}).
		Where("entity_type = ? AND entity_id = ? AND user_id = ?", types.EntityPost, 100, 11).
		Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestApplyValidation(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	seedAnimal(t, db, 200)
	ctx := context.Background()

	// 未注册实体类型
	err := s.Apply(ctx, "toy", 1, 11, strptr(types.KindLove))
	assert.Equal(t, http.StatusBadRequest, bizCode(t, err))

	// kind 不在该实体的集合内：post 没有 match
	err = s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindMatch))
	assert.Equal(t, http.StatusBadRequest, bizCode(t, err))

	// animal 没有 like
	err = s.Apply(ctx, types.EntityAnimal, 200, 11, strptr(types.KindLike))
	assert.Equal(t, http.StatusBadRequest, bizCode(t, err))

	// 实体不存在
	err = s.Apply(ctx, types.EntityPost, 404, 11, strptr(types.KindLove))
	assert.Equal(t, http.StatusNotFound, bizCode(t, err))
}

func TestApplyCountersMatchRows(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	// 一串混合操作后计数与明细行必须对得上
	ops := []struct {
		user uint64
		kind *string
	}{
		{11, strptr(types.KindLove)},
		{12, strptr(types.KindLove)},
		{13, strptr(types.KindSad)},
		{11, strptr(types.KindSad)},
		{12, nil},
		{14, strptr(types.KindLike)},
		{13, nil},
		{13, strptr(types.KindLove)},
	}
	for _, op := range ops {
		require.NoError(t, s.Apply(ctx, types.EntityPost, 100, op.user, op.kind))
	}

	counters, err := s.GetCounters(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	for _, kind := range []string{types.KindLove, types.KindSad, types.KindLike} {
		rows, err := s.ReactionDAO.CountByEntityKind(ctx, types.EntityPost, 100, kind)
		require.NoError(t, err)
		assert.Equal(t, rows, counters[kind], "kind %s", kind)
	}
}

func TestApplyStatsConflictRetries(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))

	// 过期版本号的写回必须报冲突
	stats, err := s.StatsDAO.GetByEntity(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	err = s.StatsDAO.UpdateGuarded(ctx, types.EntityPost, 100, stats.Version-1, map[string]int64{types.KindLove: 9})
	assert.ErrorIs(t, err, dao.ErrStatsConflict)

	// 已有计数行时的重复建行同样报冲突
	err = s.StatsDAO.CreateGuarded(ctx, types.EntityPost, 100, map[string]int64{})
	assert.ErrorIs(t, err, dao.ErrStatsConflict)

	// 冲突不落地，正常路径不受影响
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 12, strptr(types.KindLove)))
	counters, err := s.GetCounters(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counters[types.KindLove])
}

func TestApplyCounterDriftClamped(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))

	// 人为制造漂移：计数已经为零但明细行还在
	stats, err := s.StatsDAO.GetByEntity(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	require.NoError(t, s.StatsDAO.UpdateGuarded(ctx, types.EntityPost, 100, stats.Version, map[string]int64{types.KindLove: 0}))

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, nil))

	counters, err := s.GetCounters(ctx, types.EntityPost, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), counters[types.KindLove])
}

func TestGetCountersBeforeFirstReaction(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)

	counters, err := s.GetCounters(context.Background(), types.EntityPost, 100)
	require.NoError(t, err)
	assert.Nil(t, counters)
}

func TestListReactorsOrder(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, uid := range []uint64{11, 12, 13} {
		require.NoError(t, db.Create(&models.Reaction{
			EntityType: types.EntityPost,
			EntityID:   100,
			UserID:     uid,
			Kind:       types.KindLove,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	items, err := s.ListReactors(ctx, types.EntityPost, 100, types.KindLove, 10, true)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, uint64(13), items[0].UserID)
	assert.Equal(t, uint64(11), items[2].UserID)

	items, err = s.ListReactors(ctx, types.EntityPost, 100, types.KindLove, 2, false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(11), items[0].UserID)
}

// fakeLister 模拟索引缺失的存储
type fakeLister struct {
	orderedErr   error
	unorderedErr error
	items        []*models.Reaction
	orderedCalls int
	unorderedCnt int
}

func (f *fakeLister) ListOrdered(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) ([]*models.Reaction, error) {
	f.orderedCalls++
	if f.orderedErr != nil {
		return nil, f.orderedErr
	}
	return f.items, nil
}

func (f *fakeLister) ListUnordered(ctx context.Context, entityType string, entityID uint64, kind string, limit int) ([]*models.Reaction, error) {
	f.unorderedCnt++
	if f.unorderedErr != nil {
		return nil, f.unorderedErr
	}
	return f.items, nil
}

func TestFetchReactorsDowngradeOnce(t *testing.T) {
	base := time.Now()
	f := &fakeLister{
		orderedErr: dao.ErrIndexUnavailable,
		items: []*models.Reaction{
			{UserID: 11, UpdatedAt: base.Add(time.Minute)},
			{UserID: 12, UpdatedAt: base.Add(3 * time.Minute)},
			{UserID: 13, UpdatedAt: base.Add(2 * time.Minute)},
		},
	}

	items, err := fetchReactors(context.Background(), f, types.EntityPost, 100, types.KindLove, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.orderedCalls)
	assert.Equal(t, 1, f.unorderedCnt)
	require.Len(t, items, 3)
	// 降级后在内存中按 updated_at 排序
	assert.Equal(t, uint64(12), items[0].UserID)
	assert.Equal(t, uint64(13), items[1].UserID)
	assert.Equal(t, uint64(11), items[2].UserID)
}

func TestFetchReactorsDowngradeErrorPropagates(t *testing.T) {
	someErr := errors.New("storage down")
	f := &fakeLister{orderedErr: dao.ErrIndexUnavailable, unorderedErr: someErr}

	_, err := fetchReactors(context.Background(), f, types.EntityPost, 100, "", 10, true)
	// 只降级一次，降级后的错误原样上抛
	assert.ErrorIs(t, err, someErr)
	assert.Equal(t, 1, f.unorderedCnt)
}

func TestFetchReactorsOtherErrorNoDowngrade(t *testing.T) {
	someErr := errors.New("bad connection")
	f := &fakeLister{orderedErr: someErr}

	_, err := fetchReactors(context.Background(), f, types.EntityPost, 100, "", 10, true)
	assert.ErrorIs(t, err, someErr)
	assert.Equal(t, 0, f.unorderedCnt)
}

func TestListReactorsAllKinds(t *testing.T) {
	db := newTestDB(t)
	s := newTestReactionService(t, db)
	seedPost(t, db, 100)
	ctx := context.Background()

	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 11, strptr(types.KindLove)))
	require.NoError(t, s.Apply(ctx, types.EntityPost, 100, 12, strptr(types.KindSad)))

	// kind 为空表示不过滤
	items, err := s.ListReactors(ctx, types.EntityPost, 100, "", 10, true)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
