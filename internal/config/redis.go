package config

import (
	"sync"
	"time"
)

type RedisConfig struct {
	URL      string
	MatchTTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

// LoadRedisConfig reads the match cache settings. An empty URL disables caching.
func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = &RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			MatchTTL: getEnvDuration("MATCH_CACHE_TTL", 6*time.Hour),
		}
	})
	return redisConfig
}
