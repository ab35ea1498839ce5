// Package ratelimit throttles API requests per user with a fixed-window
// counter in Redis. The window logic runs as a Lua script so the increment
// and expiry are atomic across service instances.
package ratelimit

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pashadev/cadvault/common/logger"
)

//go:embed rate_limit.lua
var rateLimitScript string

// Result is the outcome of a rate limit check
type Result struct {
	Allowed           bool
	CurrentCount      int64
	Limit             int64
	RetryAfterSeconds int64
}

// Limiter counts requests per user in Redis
type Limiter struct {
	redis  *redis.Client
	script *redis.Script
	log    *logger.Logger
}

// New creates a limiter with the embedded window script
func New(redisClient *redis.Client, log *logger.Logger) *Limiter {
	return &Limiter{
		redis:  redisClient,
		script: redis.NewScript(rateLimitScript),
		log:    log,
	}
}

// CheckUser checks the per-user request limit for one window
func (l *Limiter) CheckUser(ctx context.Context, userID int64, limit int64, windowSec int) (*Result, error) {
	key := fmt.Sprintf("rate_limit:user:%d", userID)
	return l.check(ctx, key, limit, windowSec)
}

func (l *Limiter) check(ctx context.Context, key string, limit int64, windowSec int) (*Result, error) {
	raw, err := l.script.Run(ctx, l.redis, []string{key}, limit, windowSec).Result()
	if err != nil {
		l.log.Error("rate limit check failed", "key", key, "error", err)
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	// Script returns {allowed, current_count, limit, retry_after}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 4 {
		return nil, fmt.Errorf("unexpected script result format")
	}

	result := &Result{
		Allowed:           values[0].(int64) == 1,
		CurrentCount:      values[1].(int64),
		Limit:             values[2].(int64),
		RetryAfterSeconds: values[3].(int64),
	}

	if !result.Allowed {
		l.log.Warn("rate limit exceeded",
			"key", key,
			"current", result.CurrentCount,
			"limit", limit,
			"retry_after", result.RetryAfterSeconds)
	}

	return result, nil
}

// Reset clears a user's counter
func (l *Limiter) Reset(ctx context.Context, userID int64) error {
	return l.redis.Del(ctx, fmt.Sprintf("rate_limit:user:%d", userID)).Err()
}
