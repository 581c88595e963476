// Package cache provides Redis caching utilities for the application.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis initializes the Redis client with the given address.
func InitRedis(addr string) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (continuing without cache)", addr, err)
			client = nil
			return
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client = redis.NewClient(opts)
	client.AddHook(metricsHook{})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (continuing without cache)", err)
		client = nil
	} else {
		log.Println("Redis connected successfully")
	}
}

// GetClient returns the current Redis client instance.
func GetClient() *redis.Client {
	return client
}

// SetClient replaces the Redis client. Used by tests.
func SetClient(c *redis.Client) {
	client = c
}

// Aside implements the cache-aside pattern: unmarshal the cached value for
// key into dest if present, otherwise call fetch (which must populate dest),
// then store dest for ttl. A nil client or any Redis failure degrades to a
// plain fetch.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	family := keyFamily(key)

	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if err := json.Unmarshal([]byte(raw), dest); err == nil {
			observability.CacheRequests.WithLabelValues(family, "hit").Inc()
			return nil
		}
		// Corrupt entry, drop it and fall through to fetch
		client.Del(ctx, key)
	}

	observability.CacheRequests.WithLabelValues(family, "miss").Inc()

	if err := fetch(); err != nil {
		return err
	}

	if data, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}

// keyFamily is the metric label for a cache key, everything before the
// first colon.
func keyFamily(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
