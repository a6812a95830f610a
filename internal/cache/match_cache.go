package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/connect-matching/internal/matching"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "connect:match"

// MatchCache stores match results keyed by the versions of both scored rows, so editing a
// profile or an offer makes its old entries unreachable until they expire.
type MatchCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewMatchCache(rdb redis.Cmdable, ttl time.Duration) *MatchCache {
	return &MatchCache{rdb: rdb, ttl: ttl}
}

func MatchKey(candidateID string, candidateVersion int64, offerID string, offerVersion int64) string {
	return fmt.Sprintf("%s:%s:%d:%s:%d", keyPrefix, candidateID, candidateVersion, offerID, offerVersion)
}

// Get returns the cached result for key. A miss is reported as (nil, false, nil).
func (c *MatchCache) Get(ctx context.Context, key string) (*matching.MatchResult, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	var res matching.MatchResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return &res, true, nil
}

func (c *MatchCache) Set(ctx context.Context, key string, res *matching.MatchResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
