package idempotent

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "delivery:idempotency"

var _ IdempotencyService = (*RedisIdempotencyService)(nil)

// RedisIdempotencyService 基于 SETNX 的幂等检查
type RedisIdempotencyService struct {
	client redis.Cmdable
	expiry time.Duration
}

// NewRedisIdempotencyService 创建一个新的Redis幂等性服务
func NewRedisIdempotencyService(client redis.Cmdable, expiry time.Duration) *RedisIdempotencyService {
	return &RedisIdempotencyService{
		client: client,
		expiry: expiry,
	}
}

func (c *RedisIdempotencyService) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.key(key), "1", c.expiry).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c *RedisIdempotencyService) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *RedisIdempotencyService) key(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
