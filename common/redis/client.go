package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pashadev/cadvault/common/config"
	"github.com/pashadev/cadvault/common/errs"
)

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Client wraps redis.Client and acts as the session token store: issued
// tokens map to the owning user id and expire with the configured TTL.
type Client struct {
	redis  *redis.Client
	logger Logger
}

const tokenPrefix = "auth:token:"

// NewClient connects to Redis and verifies the connection
func NewClient(ctx context.Context, cfg *config.Config, logger Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis connected", "addr", cfg.RedisAddr())

	return &Client{redis: rdb, logger: logger}, nil
}

// GetUnderlying returns the underlying redis.Client for advanced operations
func (c *Client) GetUnderlying() *redis.Client {
	return c.redis
}

// StoreToken maps a session token to a user id with an expiry
func (c *Client) StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	key := tokenPrefix + token
	if err := c.redis.Set(ctx, key, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		c.logger.Error("redis SET failed", "key", key, "error", err)
		return fmt.Errorf("store token: %w", err)
	}
	c.logger.Debug("session token stored", "user_id", userID, "ttl", ttl)
	return nil
}

// LookupToken resolves a session token to the owning user id.
// An unknown or expired token yields errs.ErrUnauthorized.
func (c *Client) LookupToken(ctx context.Context, token string) (int64, error) {
	val, err := c.redis.Get(ctx, tokenPrefix+token).Result()
	if err == redis.Nil {
		return 0, errs.ErrUnauthorized
	}
	if err != nil {
		c.logger.Error("redis GET failed", "error", err)
		return 0, fmt.Errorf("lookup token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt token entry: %w", err)
	}
	return userID, nil
}

// RevokeToken removes a session token
func (c *Client) RevokeToken(ctx context.Context, token string) error {
	if err := c.redis.Del(ctx, tokenPrefix+token).Err(); err != nil {
		c.logger.Error("redis DEL failed", "error", err)
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.redis.Close()
}
