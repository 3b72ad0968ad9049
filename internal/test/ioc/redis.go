package ioc

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient   *redis.Client
	initRedisOnce sync.Once
)

func InitRedis() *redis.Client {
	initRedisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	})
	return redisClient
}
