// Package cache 关注计数的 redis 读穿缓存。关系变更后由 service 主动失效，TTL 兜底。
// 每个用户另有一个版本号 key，失效时自增；回填只在版本号未变时写入，
// 避免读库之后才到达的失效被旧值覆盖
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/social-feed/internal/model"
)

const (
	followCountsKeyPrefix = "social:follow_counts:"
	followCountsGenPrefix = "social:follow_counts_gen:"
	// 版本号 key 的存活时间远大于一次读库回填的窗口
	genTTL         = 24 * time.Hour
	fieldFollowing = "following"
	fieldFollowers = "followers"
)

// FollowCounts 计数缓存
type FollowCounts interface {
	// Get 命中返回 (counts, true, nil)，未命中 (zero, false, nil)
	Get(ctx context.Context, userID int64) (model.FollowCounts, bool, error)
	// Version 读库之前取当前版本号
	Version(ctx context.Context, userID int64) (int64, error)
	// Set 仅当版本号仍等于 version 时写入；stored 为 false 表示期间发生过失效
	Set(ctx context.Context, userID, version int64, c model.FollowCounts) (stored bool, err error)
	Invalidate(ctx context.Context, userIDs ...int64) error
}

// RedisFollowCounts 以 hash 保存两个计数
type RedisFollowCounts struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient 连接 redis 并 ping 一次
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisFollowCounts(client *redis.Client, ttl time.Duration) *RedisFollowCounts {
	return &RedisFollowCounts{client: client, ttl: ttl}
}

func followCountsKey(userID int64) string {
	return followCountsKeyPrefix + strconv.FormatInt(userID, 10)
}

func followCountsGenKey(userID int64) string {
	return followCountsGenPrefix + strconv.FormatInt(userID, 10)
}

func (s *RedisFollowCounts) Get(ctx context.Context, userID int64) (model.FollowCounts, bool, error) {
	vals, err := s.client.HMGet(ctx, followCountsKey(userID), fieldFollowing, fieldFollowers).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.FollowCounts{}, false, nil
		}
		return model.FollowCounts{}, false, fmt.Errorf("redis get follow counts: %w", err)
	}
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return model.FollowCounts{}, false, nil
	}

	following, err := parseCount(vals[0])
	if err != nil {
		return model.FollowCounts{}, false, err
	}
	followers, err := parseCount(vals[1])
	if err != nil {
		return model.FollowCounts{}, false, err
	}
	return model.FollowCounts{FollowingCount: following, FollowerCount: followers}, true, nil
}

func (s *RedisFollowCounts) Version(ctx context.Context, userID int64) (int64, error) {
	v, err := versionOf(s.client.Get(ctx, followCountsGenKey(userID)))
	if err != nil {
		return 0, fmt.Errorf("redis get follow counts version: %w", err)
	}
	return v, nil
}

// versionOf 版本号 key 不存在视为 0
func versionOf(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

var errVersionChanged = errors.New("follow counts version changed")

func (s *RedisFollowCounts) Set(ctx context.Context, userID, version int64, c model.FollowCounts) (bool, error) {
	key := followCountsKey(userID)
	genKey := followCountsGenKey(userID)

	// WATCH 版本号：检查与写入之间若有失效，EXEC 失败
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := versionOf(tx.Get(ctx, genKey))
		if err != nil {
			return err
		}
		if cur != version {
			return errVersionChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldFollowing, c.FollowingCount, fieldFollowers, c.FollowerCount)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errVersionChanged), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("redis set follow counts: %w", err)
	}
}

// Invalidate 先自增版本号再删除计数，进行中的回填因此作废
func (s *RedisFollowCounts) Invalidate(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	pipe := s.client.TxPipeline()
	for _, id := range userIDs {
		genKey := followCountsGenKey(id)
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, genTTL)
		pipe.Del(ctx, followCountsKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis invalidate follow counts: %w", err)
	}
	return nil
}

func parseCount(v interface{}) (int64, error) {
	str, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected follow count type %T", v)
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse follow count: %w", err)
	}
	return n, nil
}

var _ FollowCounts = (*RedisFollowCounts)(nil)
