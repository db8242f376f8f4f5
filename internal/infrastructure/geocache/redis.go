package geocache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is an optional Cache backend for deployments that want the geo
// cache to survive process restarts or be shared across sentinel
// instances, adapted from the teacher's RedisStateStore key-prefix/TTL
// shape (internal/infrastructure/cache/redisstatestore.go) but with
// plain Get/Set semantics instead of one-time-use GETDEL, since a geo
// lookup is read many times, not consumed once.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed Cache. ttl of zero means entries never
// expire.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, host string) (string, bool) {
	val, err := r.client.Get(ctx, r.buildKey(host)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false
		}
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, host string, country string) {
	_ = r.client.Set(ctx, r.buildKey(host), country, r.ttl).Err()
}

func (r *Redis) buildKey(host string) string {
	return r.prefix + host
}
