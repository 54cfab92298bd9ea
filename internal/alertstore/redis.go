package alertstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "stay-planner:"

// Redis is a ledger shared by every alerts process pointed at the same Redis.
// Claims are SET NX with an expiry, so concurrent sweeps cannot both win.
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisOption configures a Redis ledger.
type RedisOption func(*Redis)

// WithKeyPrefix namespaces every ledger key.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis constructs a Redis-backed ledger. The client lifecycle is managed
// by the caller.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Claim sets key if it is absent. It returns false if another sweep holds it.
func (r *Redis) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.prefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("alertstore.Redis.Claim: %w", err)
	}
	return ok, nil
}

// Release deletes key.
func (r *Redis) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("alertstore.Redis.Release: %w", err)
	}
	return nil
}
