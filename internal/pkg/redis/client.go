package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/natkip/CSC3916-Assignment3/internal/pkg/config"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Init initializes the Redis client. Redis is optional; when it is not
// configured or unreachable the signin throttle is simply disabled.
func Init(cfg *config.Config) error {
	if cfg.Redis.Addr == "" {
		return errors.New("redis address not configured")
	}

	client = redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		return err
	}

	zap.L().Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr))
	return nil
}

// Enabled reports whether a Redis connection is available
func Enabled() bool {
	return client != nil
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

func signinKey(username string) string {
	return "signin_failures:" + username
}

// FailedSignins returns the number of failed signin attempts recorded
// for a username within the current lockout window.
func FailedSignins(username string) (int, error) {
	if client == nil {
		return 0, nil
	}

	count, err := client.Get(ctx, signinKey(username)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// RecordFailedSignin increments the failure counter for a username. The
// counter expires after window so lockouts clear themselves.
func RecordFailedSignin(username string, window time.Duration) error {
	if client == nil {
		return nil
	}

	key := signinKey(username)
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		client.Expire(ctx, key, window)
	}
	return nil
}

// ClearFailedSignins removes the failure counter after a successful signin
func ClearFailedSignins(username string) error {
	if client == nil {
		return nil
	}
	return client.Del(ctx, signinKey(username)).Err()
}
