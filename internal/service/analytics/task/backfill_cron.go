package task

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/service/analytics"
)

// BackfillCron 定时补算最近几天缺失的每日统计
type BackfillCron struct {
	svc    analytics.Service
	days   int
	logger *elog.Component
}

func (c *BackfillCron) Do(ctx context.Context) error {
	const timeout = time.Minute
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	filled, err := c.svc.Backfill(ctx, c.days)
	if len(filled) > 0 {
		c.logger.Info("补算每日统计", elog.Any("dates", filled))
	}
	return err
}

func NewBackfillCron(svc analytics.Service, days int) *BackfillCron {
	return &BackfillCron{
		svc:    svc,
		days:   days,
		logger: elog.DefaultLogger,
	}
}
