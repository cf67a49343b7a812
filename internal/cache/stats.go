package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsKey = "admin:stats"

// StatsCache is a small cache-aside layer over the admin stats counts so the
// dashboard does not hammer the users table. A nil client disables caching.
type StatsCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{RDB: rdb, TTL: ttl}
}

// Get unmarshals the cached stats payload into dest. The bool reports a hit.
func (c *StatsCache) Get(ctx context.Context, dest interface{}) (bool, error) {
	if c == nil || c.RDB == nil {
		return false, nil
	}
	raw, err := c.RDB.Get(ctx, statsKey).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *StatsCache) Set(ctx context.Context, value interface{}) error {
	if c == nil || c.RDB == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, statsKey, raw, c.TTL).Err()
}

// Invalidate drops the cached counts, used after a verification decision so
// pendingVerifications does not lag a full TTL behind.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if c == nil || c.RDB == nil {
		return
	}
	c.RDB.Del(ctx, statsKey)
}
