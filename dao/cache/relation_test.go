package cache

import (
	"context"
	"testing"
	"time"

	"Foodgram/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })
	return mr, rds
}

func TestRelationStorage_MissFillHit(t *testing.T) {
	mr, rds := newRedis(t)
	conf := &config.Config{RelationCache: &config.RelationCache{TTLSeconds: 60}}
	s := NewRelationStorage(rds, conf)
	ctx := context.Background()

	_, ok, err := s.Members(ctx, "favorite", 7)
	require.NoError(t, err)
	assert.False(t, ok)

	filled, err := s.Fill(ctx, "favorite", 7, "", []uint64{3, 11})
	require.NoError(t, err)
	assert.True(t, filled)
	ids, ok, err := s.Members(ctx, "favorite", 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.ElementsMatch(t, []uint64{3, 11}, ids)

	assert.Equal(t, 60*time.Second, mr.TTL("foodgram:rel:favorite:7"))
}

func TestRelationStorage_EmptySetIsCached(t *testing.T) {
	_, rds := newRedis(t)
	s := NewRelationStorage(rds, &config.Config{RelationCache: &config.RelationCache{TTLSeconds: 60}})
	ctx := context.Background()

	_, err := s.Fill(ctx, "follow", 1, "", nil)
	require.NoError(t, err)
	ids, ok, err := s.Members(ctx, "follow", 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, ids)
}

func TestRelationStorage_Invalidate(t *testing.T) {
	_, rds := newRedis(t)
	s := NewRelationStorage(rds, &config.Config{RelationCache: &config.RelationCache{TTLSeconds: 60}})
	ctx := context.Background()

	_, err := s.Fill(ctx, "shopping_cart", 2, "", []uint64{5})
	require.NoError(t, err)
	require.NoError(t, s.Invalidate(ctx, "shopping_cart", 2))

	_, ok, err := s.Members(ctx, "shopping_cart", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	version, err := s.Version(ctx, "shopping_cart", 2)
	require.NoError(t, err)
	assert.Equal(t, "1", version)
}

func TestRelationStorage_FillSkippedAfterInvalidate(t *testing.T) {
	mr, rds := newRedis(t)
	s := NewRelationStorage(rds, &config.Config{RelationCache: &config.RelationCache{TTLSeconds: 60}})
	ctx := context.Background()

	// 读库前取版本，读库后有一次写入
	version, err := s.Version(ctx, "follow", 4)
	require.NoError(t, err)
	require.NoError(t, s.Invalidate(ctx, "follow", 4))

	filled, err := s.Fill(ctx, "follow", 4, version, []uint64{9})
	require.NoError(t, err)
	assert.False(t, filled)
	assert.False(t, mr.Exists("foodgram:rel:follow:4"))

	version, err = s.Version(ctx, "follow", 4)
	require.NoError(t, err)
	filled, err = s.Fill(ctx, "follow", 4, version, []uint64{9})
	require.NoError(t, err)
	assert.True(t, filled)
	ids, ok, err := s.Members(ctx, "follow", 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []uint64{9}, ids)
}

func TestTokenStorage_Revoke(t *testing.T) {
	mr, rds := newRedis(t)
	s := NewTokenStorage(rds)
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err = s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStorage_RevokeExpired(t *testing.T) {
	_, rds := newRedis(t)
	s := NewTokenStorage(rds)
	ctx := context.Background()

	require.NoError(t, s.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	revoked, err := s.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}
