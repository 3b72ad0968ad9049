package dao

import (
	"context"
	"errors"
)

var ErrDuplicateKey = errors.New("唯一索引冲突")

//go:generate mockgen -source=./types.go -destination=./mocks/dao.mock.go -package=daomocks
type DeliveryDAO interface {
	Create(ctx context.Context, record DeliveryRecord) error
	// Save 按 ID 覆盖，不存在时插入
	Save(ctx context.Context, record DeliveryRecord) error
	FindByID(ctx context.Context, id int64) (DeliveryRecord, error)
	FindByCtimeRange(ctx context.Context, start, end int64, offset, limit int) ([]DeliveryRecord, error)
	FindStale(ctx context.Context, phase string, utime int64, limit int) ([]DeliveryRecord, error)
}

type AnalyticsDAO interface {
	Upsert(ctx context.Context, data DailyAnalytics) error
	FindByDate(ctx context.Context, date string) (DailyAnalytics, error)
	FindRange(ctx context.Context, start, end string) ([]DailyAnalytics, error)
	FindDates(ctx context.Context, start, end string) ([]string, error)
}

type UserDAO interface {
	FindByRoles(ctx context.Context, roles []string) ([]User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]User, error)
}

type SubscriptionDAO interface {
	Upsert(ctx context.Context, sub PushSubscription) error
	FindByUserID(ctx context.Context, userID int64) (PushSubscription, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

type TemplateDAO interface {
	IncrUsage(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (NotificationTemplate, error)
}
