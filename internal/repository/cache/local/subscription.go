package local

import (
	"context"
	"errors"

	ca "github.com/patrickmn/go-cache"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/repository/cache"
)

var _ cache.SubscriptionCache = (*SubscriptionCache)(nil)

// SubscriptionCache 进程内的推送订阅缓存
type SubscriptionCache struct {
	localCache *ca.Cache
}

func NewSubscriptionCache(c *ca.Cache) *SubscriptionCache {
	return &SubscriptionCache{localCache: c}
}

func (c *SubscriptionCache) Get(_ context.Context, userID int64) (domain.PushSubscription, error) {
	v, ok := c.localCache.Get(cache.SubscriptionKey(userID))
	if !ok {
		return domain.PushSubscription{}, cache.ErrKeyNotFound
	}
	vv, ok := v.(domain.PushSubscription)
	if !ok {
		return domain.PushSubscription{}, errors.New("数据类型不正确")
	}
	return vv, nil
}

func (c *SubscriptionCache) Set(_ context.Context, sub domain.PushSubscription) error {
	c.localCache.Set(cache.SubscriptionKey(sub.UserID), sub, cache.DefaultExpiredTime)
	return nil
}

func (c *SubscriptionCache) Del(_ context.Context, userID int64) error {
	c.localCache.Delete(cache.SubscriptionKey(userID))
	return nil
}
