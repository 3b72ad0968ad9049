package analytics

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/pool"
	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
)

var _ Trigger = (*LocalTrigger)(nil)

// LocalTrigger 在本进程的任务池里重算当天统计，调用方不等待提交
type LocalTrigger struct {
	svc           Service
	taskPool      pool.TaskPool
	submitTimeout time.Duration
	timeout       time.Duration
	logger        *elog.Component
}

func NewLocalTrigger(svc Service, taskPool pool.TaskPool, submitTimeout, timeout time.Duration) *LocalTrigger {
	return &LocalTrigger{
		svc:           svc,
		taskPool:      taskPool,
		submitTimeout: submitTimeout,
		timeout:       timeout,
		logger:        elog.DefaultLogger,
	}
}

func (t *LocalTrigger) Trigger(ctx context.Context, record domain.DeliveryRecord) {
	// 与请求的生命周期脱钩
	detached := context.WithoutCancel(ctx)
	day := time.UnixMilli(record.Ctime)

	go func() {
		submitCtx, cancel := context.WithTimeout(detached, t.submitTimeout)
		defer cancel()
		err := t.taskPool.Submit(submitCtx, pool.TaskFunc(func(_ context.Context) error {
			runCtx, cancel := context.WithTimeout(detached, t.timeout)
			defer cancel()
			if _, err := t.svc.RecomputeDay(runCtx, day); err != nil {
				t.logger.Warn("重算每日统计失败",
					elog.Int64("deliveryID", record.ID),
					elog.String("date", domain.DateOf(day)),
					elog.FieldErr(err))
			}
			return nil
		}))
		if err != nil {
			// 统计池满时放弃，由定时补算和下一次投递修正
			t.logger.Warn("提交统计任务失败",
				elog.Int64("deliveryID", record.ID),
				elog.FieldErr(err))
		}
	}()
}

// NopTrigger 不做任何统计
type NopTrigger struct{}

func (NopTrigger) Trigger(context.Context, domain.DeliveryRecord) {}
