package ioc

import (
	"github.com/gotomicro/ego/task/ecron"
	"notification-delivery/internal/service/analytics"
	analyticstask "notification-delivery/internal/service/analytics/task"
	notificationtask "notification-delivery/internal/service/notification/task"
)

func InitBackfillCron(svc analytics.Service) *analyticstask.BackfillCron {
	return analyticstask.NewBackfillCron(svc, loadAnalyticsConfig().BackfillDays)
}

func Crons(stale *notificationtask.StaleDeliveryCron, backfill *analyticstask.BackfillCron) []ecron.Ecron {
	c1 := ecron.Load("cron.staleDelivery").Build(ecron.WithJob(stale.Do))
	c2 := ecron.Load("cron.analyticsBackfill").Build(ecron.WithJob(backfill.Do))
	return []ecron.Ecron{c1, c2}
}
