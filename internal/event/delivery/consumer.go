package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/pkg/mqx"
	"notification-delivery/internal/pkg/retry"
	"notification-delivery/internal/service/analytics"
)

const defaultRecomputeTimeout = 30 * time.Second

// Consumer 消费投递完成事件，重算事件所在日期的统计
type Consumer struct {
	svc      analytics.Service
	consumer mqx.Consumer
	executor *retry.Executor
	logger   *elog.Component
}

func NewConsumer(svc analytics.Service, consumer mqx.Consumer, executor *retry.Executor) *Consumer {
	return &Consumer{
		svc:      svc,
		consumer: consumer,
		executor: executor,
		logger:   elog.DefaultLogger,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	go func() {
		for {
			if ctx.Err() != nil {
				if err := c.consumer.Close(); err != nil {
					c.logger.Warn("关闭消费者失败", elog.FieldErr(err))
				}
				return
			}
			if err := c.Consume(ctx); err != nil {
				c.logger.Error("消费投递完成事件失败", elog.FieldErr(err))
			}
		}
	}()
}

// Consume 处理一条消息，解析失败的消息直接提交，避免一直卡住
func (c *Consumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Next(ctx)
	if errors.Is(err, mqx.ErrNoMessage) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt DeliveryCompletedEvent
	if err = json.Unmarshal(msg.Value, &evt); err != nil {
		c.logger.Warn("解析投递完成事件失败", elog.String("value", string(msg.Value)), elog.FieldErr(err))
		return c.consumer.Commit(ctx, msg)
	}
	day, err := time.Parse(domain.DateLayout, evt.Date)
	if err != nil {
		c.logger.Warn("投递完成事件日期非法", elog.String("eventID", evt.EventID), elog.FieldErr(err))
		return c.consumer.Commit(ctx, msg)
	}

	_, err = c.executor.Do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, defaultRecomputeTimeout)
		defer cancel()
		_, er := c.svc.RecomputeDay(ctx, day)
		return er
	})
	if err != nil {
		// 统计可以由补算任务兜底，这里不阻塞后续消息
		c.logger.Error("重算每日统计失败",
			elog.String("eventID", evt.EventID),
			elog.String("date", evt.Date),
			elog.FieldErr(err))
	}
	return c.consumer.Commit(ctx, msg)
}
