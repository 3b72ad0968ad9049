package delivery

import (
	"context"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/pkg/mqx"
	"notification-delivery/internal/service/analytics"
)

var _ analytics.Trigger = (*EventTrigger)(nil)

func NewDeliveryCompletedEventProducer(producer *kafka.Producer) mqx.Producer[DeliveryCompletedEvent] {
	return mqx.NewGeneralProducer[DeliveryCompletedEvent](producer, EventName, PartitionKey)
}

// EventTrigger 把投递完成事件发到消息队列，由 Consumer 异步重算统计
type EventTrigger struct {
	producer mqx.Producer[DeliveryCompletedEvent]
	timeout  time.Duration
	now      func() time.Time
	logger   *elog.Component
}

func NewEventTrigger(producer mqx.Producer[DeliveryCompletedEvent], timeout time.Duration) *EventTrigger {
	return &EventTrigger{
		producer: producer,
		timeout:  timeout,
		now:      time.Now,
		logger:   elog.DefaultLogger,
	}
}

func (t *EventTrigger) Trigger(ctx context.Context, record domain.DeliveryRecord) {
	evt := NewDeliveryCompletedEvent(record, t.now())
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()
		if err := t.producer.Produce(ctx, evt); err != nil {
			t.logger.Warn("发送投递完成事件失败",
				elog.Int64("deliveryID", evt.DeliveryID),
				elog.String("eventID", evt.EventID),
				elog.FieldErr(err))
		}
	}()
}
