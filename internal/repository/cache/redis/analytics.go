package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/repository/cache"
)

var _ cache.AnalyticsCache = (*analyticsCache)(nil)

type analyticsCache struct {
	client     redis.Cmdable
	expiration time.Duration
	logger     *elog.Component
}

func NewAnalyticsCache(client redis.Cmdable) cache.AnalyticsCache {
	return &analyticsCache{
		client:     client,
		expiration: cache.DefaultExpiredTime,
		logger:     elog.DefaultLogger,
	}
}

func (c *analyticsCache) Get(ctx context.Context, date string) (domain.DailyAnalytics, error) {
	val, err := c.client.Get(ctx, cache.AnalyticsKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DailyAnalytics{}, cache.ErrKeyNotFound
	}
	if err != nil {
		return domain.DailyAnalytics{}, err
	}
	var res domain.DailyAnalytics
	if err = json.Unmarshal(val, &res); err != nil {
		c.logger.Warn("每日统计缓存数据损坏", elog.String("date", date), elog.FieldErr(err))
		return domain.DailyAnalytics{}, cache.ErrKeyNotFound
	}
	return res, nil
}

func (c *analyticsCache) Set(ctx context.Context, a domain.DailyAnalytics) error {
	val, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cache.AnalyticsKey(a.Date), val, c.expiration).Err()
}

func (c *analyticsCache) Del(ctx context.Context, date string) error {
	return c.client.Del(ctx, cache.AnalyticsKey(date)).Err()
}
