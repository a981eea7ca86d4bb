package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"Foodgram/config"

	"github.com/redis/go-redis/v9"
)

// emptyMember 占位成员，区分“空集合”和“未缓存”
const emptyMember = "0"

// RelationStorage 缓存用户的收藏、购物车、关注目标集合
type RelationStorage struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRelationStorage(rds *redis.Client, conf *config.Config) *RelationStorage {
	return &RelationStorage{redis: rds, ttl: conf.RelationCache.TTL()}
}

// Members 读取集合；ok 为 false 表示未缓存
// @params kind  关系类型 favorite / shopping_cart / follow
// @params uid   用户ID
func (r *RelationStorage) Members(ctx context.Context, kind string, uid uint64) (ids []uint64, ok bool, err error) {
	values, err := r.redis.SMembers(ctx, r.name(kind, uid)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(values) == 0 {
		return nil, false, nil
	}

	ids = make([]uint64, 0, len(values))
	for _, v := range values {
		if v == emptyMember {
			continue
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("cache.RelationStorage: bad member %q: %w", v, err)
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

// fillScript 版本号未变时才重建集合；版本在读库之前取得，期间有写入则放弃本次回填
// KEYS[1] 集合 KEYS[2] 版本号  ARGV[1] 读库前的版本 ARGV[2] 过期秒数 ARGV[3:] 成员
var fillScript = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if not current then current = '' end
if current ~= ARGV[1] then return 0 end
redis.call('DEL', KEYS[1])
redis.call('SADD', KEYS[1], unpack(ARGV, 3))
redis.call('EXPIRE', KEYS[1], ARGV[2])
return 1
`)

// Version 集合的版本号，未写过时为空串；在读库之前调用
func (r *RelationStorage) Version(ctx context.Context, kind string, uid uint64) (string, error) {
	v, err := r.redis.Get(ctx, r.versionName(kind, uid)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

// Fill 用数据库结果重建集合并设置过期时间；version 与当前版本不一致时不写，返回 false
func (r *RelationStorage) Fill(ctx context.Context, kind string, uid uint64, version string, ids []uint64) (bool, error) {
	args := make([]any, 0, len(ids)+3)
	args = append(args, version, int64(r.ttl/time.Second), emptyMember)
	for _, id := range ids {
		args = append(args, strconv.FormatUint(id, 10))
	}

	n, err := fillScript.Run(ctx, r.redis, []string{r.name(kind, uid), r.versionName(kind, uid)}, args...).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate 关系变更后递增版本并删除集合，下次读取时重建
func (r *RelationStorage) Invalidate(ctx context.Context, kind string, uid uint64) error {
	version := r.versionName(kind, uid)
	_, err := r.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, version)
		pipe.Expire(ctx, version, 2*r.ttl)
		pipe.Del(ctx, r.name(kind, uid))
		return nil
	})
	return err
}

// foodgram:rel:kind:uid
func (r *RelationStorage) name(kind string, uid uint64) string {
	return fmt.Sprintf("foodgram:rel:%s:%d", kind, uid)
}

// foodgram:rel:ver:kind:uid
func (r *RelationStorage) versionName(kind string, uid uint64) string {
	return fmt.Sprintf("foodgram:rel:ver:%s:%d", kind, uid)
}
