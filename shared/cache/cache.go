package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roomform/infras/otel"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
	keySeparator          = ":"
)

// RedisCache holds short-lived counters shared between replicas.
type RedisCache interface {
	// Increment bumps the counter at key and returns the new value together
	// with the time left before it resets. The window starts on the first hit.
	Increment(ctx context.Context, key string, windowSeconds int) (count int64, ttl time.Duration, err error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// Key joins prefix and parts into a namespaced cache key. Empty parts are
// kept so positions stay stable.
func Key(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), keySeparator)
}

// Increment implements RedisCache.
func (cache *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, ttl time.Duration, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	window := time.Second * time.Duration(windowSeconds)

	var (
		incr   *redis.IntCmd
		expire *redis.DurationCmd
	)

	_, err = cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		expire = pipe.TTL(ctx, key)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Increment").Msg("failed to increment cache")

		return 0, 0, fmt.Errorf("failed to increment cache value: %w", err)
	}

	ttl = expire.Val()
	if ttl < 0 {
		ttl = window
	}

	return incr.Val(), ttl, nil
}
