package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const keyPrefix = "budgetly:ratelimit:"

type Limiter interface {
	// Allow records one attempt for key and reports whether it is still within the limit.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset forgets all attempts recorded for key.
	Reset(ctx context.Context, key string) error
}

// RedisLimiter is a fixed window counter: the first attempt starts a window of length window.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := keyPrefix + key

	attempts, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		err = fmt.Errorf("failed to record attempt: %w", err)
		log.Error(err)
		return false, err
	}
	if attempts == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			err = fmt.Errorf("failed to start attempt window: %w", err)
			log.Error(err)
			return false, err
		}
	}

	if attempts > int64(l.maxAttempts) {
		log.Warnf("rate limit exceeded for %s (%d attempts)", key, attempts)
		return false, nil
	}
	return true, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		err = fmt.Errorf("failed to reset attempts: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

// NoopLimiter allows everything. Used when Redis is disabled.
type NoopLimiter struct{}

func (NoopLimiter) Allow(context.Context, string) (bool, error) {
	return true, nil
}

func (NoopLimiter) Reset(context.Context, string) error {
	return nil
}
