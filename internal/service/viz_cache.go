package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// vizCacheTTL bounds the staleness of memoised aggregates between the
// write-path invalidations.
const vizCacheTTL = 30 * time.Second

// VizCache memoises visualization aggregates in Redis. Answer and attempt
// writes drop the affected keys by prefix, so a cached aggregate never
// outlives the data it was computed from. A nil cache or client degrades to
// uncached computation.
type VizCache struct {
	Redis *redis.Client
}

func NewVizCache(rdb *redis.Client) *VizCache {
	return &VizCache{Redis: rdb}
}

func (c *VizCache) Get(key string, dest interface{}) bool {
	if c == nil || c.Redis == nil {
		return false
	}
	raw, err := c.Redis.Get(context.Background(), key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *VizCache) Set(key string, value interface{}) {
	if c == nil || c.Redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.Redis.Set(context.Background(), key, raw, vizCacheTTL)
}

// InvalidateSet drops every memoised aggregate whose inputs a write to the
// given set can change, across all viewers. Best effort: a scan error just
// leaves the TTL to finish the job.
func (c *VizCache) InvalidateSet(setID, assessmentID uint) {
	if c == nil || c.Redis == nil {
		return
	}
	ctx := context.Background()
	for _, pattern := range VizInvalidationPatterns(setID, assessmentID) {
		var cursor uint64
		for {
			keys, next, err := c.Redis.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return
			}
			if len(keys) > 0 {
				c.Redis.Del(ctx, keys...)
			}
			if next == 0 {
				break
			}
			cursor = next
		}
	}
}

// VizInvalidationPatterns lists the key patterns a write to the set must
// drop: per-question stats on the set and the class score of its
// assessment. The wildcard in viewer position covers every supervisor.
func VizInvalidationPatterns(setID, assessmentID uint) []string {
	return []string{
		fmt.Sprintf("viz:qstats:*:%d:*", setID),
		fmt.Sprintf("viz:ascore:*:%d", assessmentID),
	}
}
