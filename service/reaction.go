package service

import (
	"Pawmate/dao"
	"Pawmate/dao/cache"
	"Pawmate/models"
	"Pawmate/pkg/log"
	"Pawmate/pkg/response"
	"Pawmate/pkg/rocketmq"
	"Pawmate/types"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IReactionService = (*ReactionService)(nil)

type IReactionService interface {
	// Apply 设置或清除反应，next 为 nil 表示清除
	Apply(ctx context.Context, entityType string, entityID, userID uint64, next *string) error
	GetCounters(ctx context.Context, entityType string, entityID uint64) (map[string]int64, error)
	GetMyReaction(ctx context.Context, entityType string, entityID, userID uint64) (*string, error)
	ListReactors(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) ([]*types.Reactor, error)
}

// 事务冲突重试预算，耗尽后向调用方返回可重试错误
const applyMaxRetry = 5

// RocketMQ 反应事件主题，供通知流水线消费
const reactionEventTopic = "pawmate_reaction_event"

type ReactionService struct {
	Db              *gorm.DB
	ReactionDAO     *dao.ReactionDAO
	StatsDAO        *dao.ReactionStatsDAO
	RelationshipDAO *dao.RelationshipDAO
	AnimalDAO       *dao.AnimalDAO
	PostDAO         *dao.PostDAO
	Cache           *cache.ReactionStorage
	Bus             *EventBus
	MqProducer      *rocketmq.Producer
}

// applyResult 单次事务的结果，用于提交后发事件
type applyResult struct {
	changed       bool
	prev          *string
	mirrorCreated bool
	mirrorDeleted bool
}

func (s *ReactionService) Apply(ctx context.Context, entityType string, entityID, userID uint64, next *string) error {
	if !types.ValidEntityType(entityType) {
		return response.NewError(http.StatusBadRequest, "不支持的实体类型")
	}
	if next != nil && !types.ValidKind(entityType, *next) {
		return response.NewError(http.StatusBadRequest, "不支持的反应类型")
	}
	if err := s.checkEntityExists(ctx, entityType, entityID); err != nil {
		return err
	}

	var res applyResult
	var err error
	for i := 0; i < applyMaxRetry; i++ {
		res = applyResult{}
		err = s.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.applyTx(ctx, tx, entityType, entityID, userID, next, &res)
		})
		if errors.Is(err, dao.ErrStatsConflict) {
			continue
		}
		break
	}
	if errors.Is(err, dao.ErrStatsConflict) {
		log.L.Warn("apply reaction retry budget exhausted",
			zap.String("entityType", entityType),
			zap.Uint64("entityID", entityID),
			zap.Uint64("userID", userID))
		return response.NewError(http.StatusServiceUnavailable, "操作冲突，请稍后重试")
	}
	if err != nil {
		return err
	}
	if !res.changed {
		return nil
	}

	s.afterApply(ctx, entityType, entityID, userID, res, next)
	return nil
}

// applyTx 反应事务协议，整体在一个数据库事务内执行
func (s *ReactionService) applyTx(ctx context.Context, tx *gorm.DB, entityType string, entityID, userID uint64, next *string, res *applyResult) error {
	reactionDAO := s.ReactionDAO.WithTx(tx)
	statsDAO := s.StatsDAO.WithTx(tx)

	// 1. 读取当前反应
	cur, err := reactionDAO.GetByEntityUser(ctx, entityType, entityID, userID)
	if err != nil {
		return err
	}
	var prev *string
	if cur != nil {
		prev = &cur.Kind
	}
	res.prev = prev

	// 2. 幂等：目标状态与当前一致时不做任何写入
	if equalKind(prev, next) {
		return nil
	}

	// 3. 读取计数并计算增量
	stats, err := statsDAO.GetByEntity(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	counters := map[string]int64{}
	if stats != nil {
		if m := stats.Counters.Data(); m != nil {
			counters = m
		}
	}
	if prev != nil {
		if counters[*prev] <= 0 {
			// 计数与记录出现漂移，按零处理并留痕
			log.L.Warn("reaction counter drift detected",
				zap.String("entityType", entityType),
				zap.Uint64("entityID", entityID),
				zap.String("kind", *prev),
				zap.Int64("count", counters[*prev]))
			counters[*prev] = 0
		} else {
			counters[*prev]--
		}
	}
	if next != nil {
		counters[*next]++
	}

	// 4. 带版本写回计数，冲突由外层整体重试
	if stats == nil {
		err = statsDAO.CreateGuarded(ctx, entityType, entityID, counters)
	} else {
		err = statsDAO.UpdateGuarded(ctx, entityType, entityID, stats.Version, counters)
	}
	if err != nil {
		return err
	}

	// 5. 写反应记录
	if next != nil {
		if err := reactionDAO.Upsert(ctx, entityType, entityID, userID, *next); err != nil {
			return err
		}
	} else if err := reactionDAO.Delete(ctx, entityType, entityID, userID); err != nil {
		return err
	}

	// 6. 关系镜像仅在特殊反应类型的进出时变化
	if err := s.applyMirrorTx(ctx, tx, entityType, entityID, userID, prev, next, res); err != nil {
		return err
	}

	res.changed = true
	return nil
}

// applyMirrorTx 处理 distinguished 反应的双侧镜像
func (s *ReactionService) applyMirrorTx(ctx context.Context, tx *gorm.DB, entityType string, entityID, userID uint64, prev, next *string, res *applyResult) error {
	dk, ok := types.DistinguishedKind(entityType)
	if !ok {
		return nil
	}
	was := prev != nil && *prev == dk
	will := next != nil && *next == dk
	switch {
	case !was && will:
		animal, err := s.AnimalDAO.WithTx(tx).GetByID(ctx, entityID)
		if err != nil {
			return err
		}
		if animal == nil {
			return response.NewError(http.StatusNotFound, "动物不存在")
		}
		if err := s.RelationshipDAO.WithTx(tx).CreatePair(ctx, animal, userID); err != nil {
			return err
		}
		res.mirrorCreated = true
	case was && !will:
		if err := s.RelationshipDAO.WithTx(tx).DeletePair(ctx, entityID, userID); err != nil {
			return err
		}
		res.mirrorDeleted = true
	}
	return nil
}

// afterApply 提交后的缓存失效与事件广播，失败只记日志
func (s *ReactionService) afterApply(ctx context.Context, entityType string, entityID, userID uint64, res applyResult, next *string) {
	s.Cache.DelCounters(ctx, entityType, entityID)
	s.Cache.DelUserKind(ctx, entityType, entityID, userID)

	now := time.Now()
	ev := &types.ReactionEvent{
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Prev:       res.prev,
		Next:       next,
		OccurredAt: now,
	}
	if err := s.Bus.PublishReaction(ctx, ev); err != nil {
		log.L.Error("publish reaction event", zap.Error(err))
	}
	if res.mirrorCreated || res.mirrorDeleted {
		action := types.RelationshipCreated
		if res.mirrorDeleted {
			action = types.RelationshipDeleted
		}
		rev := &types.RelationshipEvent{
			AnimalID:   entityID,
			UserID:     userID,
			Action:     action,
			OccurredAt: now,
		}
		if err := s.Bus.PublishRelationship(ctx, rev); err != nil {
			log.L.Error("publish relationship event", zap.Error(err))
		}
	}

	body, err := json.Marshal(ev)
	if err == nil {
		if err := s.MqProducer.SendMsg(reactionEventTopic, body); err != nil {
			log.L.Error("send reaction event to mq", zap.Error(err))
		}
	}
}

func (s *ReactionService) GetCounters(ctx context.Context, entityType string, entityID uint64) (map[string]int64, error) {
	if !types.ValidEntityType(entityType) {
		return nil, response.NewError(http.StatusBadRequest, "不支持的实体类型")
	}
	if counters, ok := s.Cache.GetCounters(ctx, entityType, entityID); ok {
		return counters, nil
	}
	stats, err := s.StatsDAO.GetByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		// 首个反应出现前没有计数行
		return nil, nil
	}
	counters := stats.Counters.Data()
	if counters == nil {
		counters = map[string]int64{}
	}
	s.Cache.SetCounters(ctx, entityType, entityID, counters)
	return counters, nil
}

func (s *ReactionService) GetMyReaction(ctx context.Context, entityType string, entityID, userID uint64) (*string, error) {
	if !types.ValidEntityType(entityType) {
		return nil, response.NewError(http.StatusBadRequest, "不支持的实体类型")
	}
	if kind, ok := s.Cache.GetUserKind(ctx, entityType, entityID, userID); ok {
		if kind == "" {
			return nil, nil
		}
		return &kind, nil
	}
	cur, err := s.ReactionDAO.GetByEntityUser(ctx, entityType, entityID, userID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		s.Cache.SetUserKind(ctx, entityType, entityID, userID, "")
		return nil, nil
	}
	s.Cache.SetUserKind(ctx, entityType, entityID, userID, cur.Kind)
	kind := cur.Kind
	return &kind, nil
}

func (s *ReactionService) ListReactors(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) ([]*types.Reactor, error) {
	if !types.ValidEntityType(entityType) {
		return nil, response.NewError(http.StatusBadRequest, "不支持的实体类型")
	}
	if kind != "" && !types.ValidKind(entityType, kind) {
		return nil, response.NewError(http.StatusBadRequest, "不支持的反应类型")
	}
	if limit <= 0 {
		limit = types.DefaultPageSize
	}
	items, err := fetchReactors(ctx, s.ReactionDAO, entityType, entityID, kind, limit, desc)
	if err != nil {
		return nil, err
	}
	result := make([]*types.Reactor, 0, len(items))
	for _, item := range items {
		result = append(result, &types.Reactor{
			UserID:    item.UserID,
			Kind:      item.Kind,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return result, nil
}

func (s *ReactionService) checkEntityExists(ctx context.Context, entityType string, entityID uint64) error {
	switch entityType {
	case types.EntityAnimal:
		exist, err := s.AnimalDAO.IsExist(ctx, "id = ?", entityID)
		if err != nil {
			return err
		}
		if !exist {
			return response.NewError(http.StatusNotFound, "动物不存在")
		}
	case types.EntityPost:
		exist, err := s.PostDAO.IsExist(ctx, "id = ?", entityID)
		if err != nil {
			return err
		}
		if !exist {
			return response.NewError(http.StatusNotFound, "帖子不存在")
		}
	}
	return nil
}

func equalKind(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ReactorLister 读侧的反应列表查询接口
type ReactorLister interface {
	ListOrdered(ctx context.Context, entityType string, entityID uint64, kind string, limit int, desc bool) ([]*models.Reaction, error)
	ListUnordered(ctx context.Context, entityType string, entityID uint64, kind string, limit int) ([]*models.Reaction, error)
}

// fetchReactors 优先走索引排序查询
// 仅在索引缺失信号上降级一次为无序查询并在内存排序，降级后的错误直接上抛
func fetchReactors(ctx context.Context, lister ReactorLister, entityType string, entityID uint64, kind string, limit int, desc bool) ([]*models.Reaction, error) {
	items, err := lister.ListOrdered(ctx, entityType, entityID, kind, limit, desc)
	if errors.Is(err, dao.ErrIndexUnavailable) {
		log.L.Warn("reactor index unavailable, downgrade to unordered query",
			zap.String("entityType", entityType),
			zap.Uint64("entityID", entityID))
		items, err = lister.ListUnordered(ctx, entityType, entityID, kind, limit)
		if err != nil {
			return nil, err
		}
		sort.Slice(items, func(i, j int) bool {
			if desc {
				return items[i].UpdatedAt.After(items[j].UpdatedAt)
			}
			return items[i].UpdatedAt.Before(items[j].UpdatedAt)
		})
		return items, nil
	}
	return items, err
}
