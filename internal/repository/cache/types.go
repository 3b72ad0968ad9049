package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notification-delivery/internal/domain"
)

var ErrKeyNotFound = errors.New("key not found")

const (
	AnalyticsPrefix    = "delivery:analytics"
	SubscriptionPrefix = "delivery:subscription"
	DefaultExpiredTime = 10 * time.Minute
)

// AnalyticsCache 每日统计缓存，重算后整体覆盖
//
//go:generate mockgen -source=./types.go -destination=./mocks/cache.mock.go -package=cachemocks
type AnalyticsCache interface {
	Get(ctx context.Context, date string) (domain.DailyAnalytics, error)
	Set(ctx context.Context, a domain.DailyAnalytics) error
	Del(ctx context.Context, date string) error
}

func AnalyticsKey(date string) string {
	return fmt.Sprintf("%s:%s", AnalyticsPrefix, date)
}

// SubscriptionCache 推送订阅缓存
type SubscriptionCache interface {
	Get(ctx context.Context, userID int64) (domain.PushSubscription, error)
	Set(ctx context.Context, sub domain.PushSubscription) error
	Del(ctx context.Context, userID int64) error
}

func SubscriptionKey(userID int64) string {
	return fmt.Sprintf("%s:%d", SubscriptionPrefix, userID)
}
