package redis

import (
	"context"
	"fmt"

	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	client *redis.Client
	ctx    = context.Background()
	log    *zap.Logger
)

// Init initializes the Redis client
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "",
		DB:       cfg.RedisService.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return err
	}

	log = zap.L().With(zap.String("component", "redis"))
	log.Info("Redis connected successfully",
		zap.String("addr", cfg.GetRedisAddr()))

	return nil
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// Available reports whether a Redis connection was established at boot.
// Report rate limiting falls back to an in-memory limiter without it.
func Available() bool {
	return client != nil
}

// AllowRequest counts a request against a fixed window and reports whether
// it is still within the limit. The counter key expires with the window.
func AllowRequest(key string, windowSeconds, maxRequests int) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("redis client not initialized")
	}

	// Lua script: atomically increment and set the window expiry on first hit
	allowScript := redis.NewScript(`
		local current = redis.call('INCR', KEYS[1])
		if current == 1 then
			redis.call('EXPIRE', KEYS[1], ARGV[1])
		end
		if current <= tonumber(ARGV[2]) then
			return 1
		else
			return 0
		end
	`)

	result, err := allowScript.Run(ctx, client, []string{key}, windowSeconds, maxRequests).Result()
	if err != nil {
		return false, err
	}

	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type")
	}

	return allowed == 1, nil
}

// Delete deletes a key from Redis
func Delete(key string) error {
	if client == nil {
		return fmt.Errorf("redis client not initialized")
	}

	return client.Del(ctx, key).Err()
}
