package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsPayload struct {
	TotalClients  int64 `json:"totalClients"`
	TotalPartners int64 `json:"totalPartners"`
}

func newTestCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStatsCache(rdb, 30*time.Second), mr
}

func TestStatsCacheMissThenHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got statsPayload
	hit, err := c.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, statsPayload{TotalClients: 7, TotalPartners: 3}))

	hit, err = c.Get(ctx, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(7), got.TotalClients)
	assert.Equal(t, int64(3), got.TotalPartners)
}

func TestStatsCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, statsPayload{TotalClients: 1}))
	mr.FastForward(time.Minute)

	var got statsPayload
	hit, err := c.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStatsCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, statsPayload{TotalClients: 1}))
	c.Invalidate(ctx)

	var got statsPayload
	hit, err := c.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStatsCacheDisabledWithoutClient(t *testing.T) {
	c := NewStatsCache(nil, time.Second)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, statsPayload{TotalClients: 1}))
	var got statsPayload
	hit, err := c.Get(ctx, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	c.Invalidate(ctx)
}
