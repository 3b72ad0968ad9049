package analytics

import (
	"context"
	"time"

	"notification-delivery/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/analytics.mock.go -package=analyticsmocks
type Service interface {
	// RecomputeDay 全量重算 day 所在 UTC 日的统计并覆盖写入，可重复调用
	RecomputeDay(ctx context.Context, day time.Time) (domain.DailyAnalytics, error)
	// Range 返回 [start, end] 内已有的日统计，按日期升序
	Range(ctx context.Context, start, end time.Time) ([]domain.DailyAnalyticsReport, error)
	// Backfill 补算最近 days 天（含今天）里缺失的日期，返回补算成功的日期
	Backfill(ctx context.Context, days int) ([]string, error)
}

// Trigger 投递完成后触发统计，不阻塞调用方，失败只记录日志
type Trigger interface {
	Trigger(ctx context.Context, record domain.DeliveryRecord)
}
