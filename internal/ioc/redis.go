package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"
	ca "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"notification-delivery/internal/pkg/idempotent"
	"notification-delivery/internal/repository/cache"
)

func InitRedisClient() *redis.Client {
	type Config struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("redis", &cfg); err != nil {
		panic(err)
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func InitRedisCmd(client *redis.Client) redis.Cmdable {
	return client
}

func InitGoCache() *ca.Cache {
	const cleanupInterval = time.Minute
	return ca.New(cache.DefaultExpiredTime, cleanupInterval)
}

// InitIdempotencyService 发送接口的幂等 key 默认保留一天
func InitIdempotencyService(cmd redis.Cmdable) idempotent.IdempotencyService {
	type Config struct {
		Expiry time.Duration `yaml:"expiry"`
	}
	cfg := Config{Expiry: 24 * time.Hour}
	if err := econf.UnmarshalKey("idempotency", &cfg); err != nil {
		panic(err)
	}
	return idempotent.NewRedisIdempotencyService(cmd, cfg.Expiry)
}
