package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"tasktracker/pkg/config"
	"tasktracker/pkg/logger"
)

// ErrNil คืนเมื่อ key ไม่มีใน cache
var ErrNil = redis.Nil

// ErrTxFailed คืนเมื่อ key ที่ WATCH ไว้ถูกแก้ก่อน EXEC
var ErrTxFailed = redis.TxFailedErr

// Client wraps the Redis client
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client from config
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	client := &Client{rdb: redis.NewClient(opt)}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("Redis connected", "url", cfg.URL)

	return client, nil
}

// Get retrieves a value by key
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// Del deletes one or more keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

// SetIfUnchanged WATCH watchKey แล้วเรียก produce ก่อน SET key ใน MULTI/EXEC
// ถ้า watchKey ถูกแก้ระหว่างนั้นจะคืน ErrTxFailed และไม่ SET
func (c *Client) SetIfUnchanged(ctx context.Context, watchKey, key string, ttl time.Duration, produce func() (string, error)) error {
	return c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		value, err := produce()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}, watchKey)
}

// BumpAndDel เพิ่ม version key แล้วลบ keys ใน transaction เดียว
func (c *Client) BumpAndDel(ctx context.Context, versionKey string, versionTTL time.Duration, keys ...string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping tests the connection
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
