package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQuotaExceeded is returned instead of calling a provider whose
// per-minute budget is used up.
var ErrQuotaExceeded = errors.New("provider quota exceeded")

// Limiter gates outbound provider calls.
type Limiter interface {
	Allow(ctx context.Context, provider string) error
}

// NoLimit allows every call.
type NoLimit struct{}

func (NoLimit) Allow(context.Context, string) error { return nil }

// counter is the slice of the redis client RedisQuota uses.
type counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisQuota counts calls per provider in fixed one-minute windows shared by
// every process pointed at the same redis. Free tiers such as NewsAPI and
// Nominatim cap request rates; this keeps a busy dashboard under them.
// Redis being unreachable never blocks a call.
type RedisQuota struct {
	rdb       counter
	perMinute int64
	now       func() time.Time
}

func NewRedisQuota(rdb *redis.Client, perMinute int) *RedisQuota {
	return &RedisQuota{rdb: rdb, perMinute: int64(perMinute), now: time.Now}
}

func (q *RedisQuota) Allow(ctx context.Context, provider string) error {
	if q.perMinute <= 0 {
		return nil
	}
	key := fmt.Sprintf("quota:%s:%d", provider, q.now().Unix()/60)
	n, err := q.rdb.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("quota counter unavailable", "provider", provider, "err", err)
		return nil
	}
	if n == 1 {
		if err := q.rdb.Expire(ctx, key, 2*time.Minute).Err(); err != nil {
			slog.Warn("quota expire failed", "key", key, "err", err)
		}
	}
	if n > q.perMinute {
		return fmt.Errorf("%s: %w (%d/min)", provider, ErrQuotaExceeded, q.perMinute)
	}
	return nil
}
