package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 计数缓存过期时间
const countersExpireAt = time.Hour

// ReactionStorage 反应读路径的 Redis 缓存
// 计数用 hash(kind -> count)，个人反应用 hash(entity_id -> kind)
// 空实例视为全未命中，便于无 Redis 环境下复用读写逻辑
type ReactionStorage struct {
	redis *redis.Client
}

func NewReactionStorage(rds *redis.Client) *ReactionStorage {
	return &ReactionStorage{redis: rds}
}

// GetCounters 读取计数缓存，未命中返回 false
func (s *ReactionStorage) GetCounters(ctx context.Context, entityType string, entityID uint64) (map[string]int64, bool) {
	if s == nil || s.redis == nil {
		return nil, false
	}
	items, err := s.redis.HGetAll(ctx, s.countersKey(entityType, entityID)).Result()
	if err != nil || len(items) == 0 {
		return nil, false
	}
	counters := make(map[string]int64, len(items))
	for kind, val := range items {
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, false
		}
		counters[kind] = n
	}
	return counters, true
}

// SetCounters 回填计数缓存
func (s *ReactionStorage) SetCounters(ctx context.Context, entityType string, entityID uint64, counters map[string]int64) {
	if s == nil || s.redis == nil {
		return
	}
	key := s.countersKey(entityType, entityID)
	fields := make(map[string]interface{}, len(counters))
	for kind, n := range counters {
		fields[kind] = n
	}
	_, _ = s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		pipe.Expire(ctx, key, countersExpireAt)
		return nil
	})
}

// DelCounters 写侧提交后失效计数缓存
func (s *ReactionStorage) DelCounters(ctx context.Context, entityType string, entityID uint64) {
	if s == nil || s.redis == nil {
		return
	}
	_ = s.redis.Del(ctx, s.countersKey(entityType, entityID)).Err()
}

// GetUserKind 读取用户对实体的反应缓存
func (s *ReactionStorage) GetUserKind(ctx context.Context, entityType string, entityID, userID uint64) (string, bool) {
	if s == nil || s.redis == nil {
		return "", false
	}
	val, err := s.redis.HGet(ctx, s.userKey(entityType, userID), strconv.FormatUint(entityID, 10)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// SetUserKind 回填用户反应缓存，kind 为空表示无反应
func (s *ReactionStorage) SetUserKind(ctx context.Context, entityType string, entityID, userID uint64, kind string) {
	if s == nil || s.redis == nil {
		return
	}
	key := s.userKey(entityType, userID)
	_, _ = s.redis.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, strconv.FormatUint(entityID, 10), kind)
		pipe.Expire(ctx, key, countersExpireAt)
		return nil
	})
}

// DelUserKind 写侧提交后失效用户反应缓存
func (s *ReactionStorage) DelUserKind(ctx context.Context, entityType string, entityID, userID uint64) {
	if s == nil || s.redis == nil {
		return
	}
	_ = s.redis.HDel(ctx, s.userKey(entityType, userID), strconv.FormatUint(entityID, 10)).Err()
}

func (s *ReactionStorage) countersKey(entityType string, entityID uint64) string {
	return fmt.Sprintf("reaction:counters:%s:%d", entityType, entityID)
}

func (s *ReactionStorage) userKey(entityType string, userID uint64) string {
	return fmt.Sprintf("reaction:user:%s:%d", entityType, userID)
}
