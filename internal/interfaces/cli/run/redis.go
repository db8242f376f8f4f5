package run

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	infraconfig "sentinel/internal/infrastructure/config"
)

func newRedisClient(cfg *infraconfig.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func hoursToDuration(hours int) time.Duration {
	return time.Duration(hours) * time.Hour
}
