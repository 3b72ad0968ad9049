package task

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/repository"
	"notification-delivery/internal/service/analytics"
	"notification-delivery/internal/service/channel"
)

// StaleDeliveryCron 进程崩溃后停在 dispatching 的投递记录，把未完成的投递标记为失败
type StaleDeliveryCron struct {
	repo      repository.DeliveryRepository
	trigger   analytics.Trigger
	threshold time.Duration
	batchSize int
	now       func() time.Time
	logger    *elog.Component
}

func (c *StaleDeliveryCron) Do(ctx context.Context) error {
	for {
		const loopTimeout = time.Second * 15
		ctx, cancel := context.WithTimeout(ctx, loopTimeout)
		cnt, err := c.oneLoop(ctx)
		cancel()
		if err != nil {
			c.logger.Error("处理超时的投递记录失败", elog.FieldErr(err))
			return err
		}
		if cnt < c.batchSize {
			return nil
		}
	}
}

func (c *StaleDeliveryCron) oneLoop(ctx context.Context) (int, error) {
	before := c.now().Add(-c.threshold).UnixMilli()
	records, err := c.repo.FindStale(ctx, domain.DeliveryPhaseDispatching, before, c.batchSize)
	if err != nil {
		return 0, err
	}
	for i := range records {
		record := records[i]
		now := c.now()
		n := record.FailPending(now, channel.MsgDeliveryInterrupt)
		record.Recount()
		record.Phase = domain.DeliveryPhaseDone
		record.Utime = now.UnixMilli()
		if err = c.repo.Save(ctx, record); err != nil {
			// 保存失败的记录 utime 不变，下一批还会查到，直接返回
			return 0, err
		}
		c.logger.Warn("投递记录超时，未完成的投递已标记为失败",
			elog.Int64("deliveryID", record.ID),
			elog.Int("interrupted", n))
		c.trigger.Trigger(ctx, record)
	}
	return len(records), nil
}

func NewStaleDeliveryCron(repo repository.DeliveryRepository, trigger analytics.Trigger, threshold time.Duration) *StaleDeliveryCron {
	const batchSize = 50
	return &StaleDeliveryCron{
		repo:      repo,
		trigger:   trigger,
		threshold: threshold,
		batchSize: batchSize,
		now:       time.Now,
		logger:    elog.DefaultLogger,
	}
}
