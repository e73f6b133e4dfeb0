// cache/redis.go
package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"ulenguage/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// InitRedis connects to Redis. The cache is optional: callers treat a
// connection failure as "run without cache".
func InitRedis() error {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}

	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	addr := fmt.Sprintf("%s:%s", redisHost, redisPort)

	client = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		utils.Logger.Error("redis_connection_failed",
			zap.Error(err),
			zap.String("addr", addr),
		)
		client = nil
		return err
	}

	utils.Logger.Info("redis_connected", zap.String("addr", addr))
	return nil
}

// Available reports whether a Redis connection was established.
func Available() bool {
	return client != nil
}

// Close closes the Redis connection.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// TranslationCache implements services.TranslationCache over Redis.
// Every failure is swallowed: a cache problem must never affect a
// translation request.
type TranslationCache struct{}

func NewTranslationCache() *TranslationCache {
	return &TranslationCache{}
}

func (TranslationCache) GetString(ctx context.Context, key string) (string, bool) {
	if client == nil {
		return "", false
	}
	val, err := client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (TranslationCache) SetString(ctx context.Context, key, value string, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, key, value, ttl).Err(); err != nil {
		utils.Logger.Warn("cache_set_failed", zap.String("key", key), zap.Error(err))
	}
}
