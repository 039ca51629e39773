package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis caches simulation responses in a Redis instance so repeated uploads
// of the same config are served without recomputation, even across server
// restarts.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

// NewRedis connects to the Redis instance at addr. A zero ttl stores entries
// without expiry.
func NewRedis(addr string, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &Redis{
		client: rdb,
		ttl:    ttl,
		ctx:    context.Background(),
	}
}

// Get returns the cached value for key. Connection errors are reported as a
// cache miss so the server falls back to recomputing.
func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores value under key with the configured TTL.
func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, r.ttl).Err()
}
