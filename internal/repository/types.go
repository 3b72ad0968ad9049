package repository

import (
	"context"

	"notification-delivery/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/repository.mock.go -package=repomocks
type DeliveryRepository interface {
	// Create 首次落库，用于崩溃后能看到停在 dispatching 的记录
	Create(ctx context.Context, record domain.DeliveryRecord) error
	// Save 按 ID 整体覆盖，可重复调用
	Save(ctx context.Context, record domain.DeliveryRecord) error
	FindByID(ctx context.Context, id int64) (domain.DeliveryRecord, error)
	// FindByCtimeRange 返回 ctime 位于 [start, end) 的全部记录
	FindByCtimeRange(ctx context.Context, start, end int64) ([]domain.DeliveryRecord, error)
	// FindStale 停留在 phase 且 utime 早于 before 的记录
	FindStale(ctx context.Context, phase domain.DeliveryPhase, before int64, limit int) ([]domain.DeliveryRecord, error)
}

type AnalyticsRepository interface {
	Upsert(ctx context.Context, a domain.DailyAnalytics) error
	FindByDate(ctx context.Context, date string) (domain.DailyAnalytics, error)
	FindRange(ctx context.Context, start, end string) ([]domain.DailyAnalytics, error)
	FindDates(ctx context.Context, start, end string) ([]string, error)
}

type UserRepository interface {
	// FindByRoles roles 为空时不做角色过滤
	FindByRoles(ctx context.Context, roles []domain.Role) ([]domain.Recipient, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Recipient, error)
}

type SubscriptionRepository interface {
	Save(ctx context.Context, sub domain.PushSubscription) error
	FindByUserID(ctx context.Context, userID int64) (domain.PushSubscription, error)
	DeleteByUserID(ctx context.Context, userID int64) error
}

type TemplateRepository interface {
	IncrUsage(ctx context.Context, id int64) error
}
