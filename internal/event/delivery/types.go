package delivery

import (
	"time"

	"github.com/google/uuid"
	"notification-delivery/internal/domain"
)

const (
	EventName = "delivery_completed_events"
)

// DeliveryCompletedEvent 一条投递记录结束，下游据此重算当天统计
type DeliveryCompletedEvent struct {
	EventID     string `json:"eventId"`
	DeliveryID  int64  `json:"deliveryId"`
	Date        string `json:"date"`
	TotalSent   int64  `json:"totalSent"`
	TotalFailed int64  `json:"totalFailed"`
	OccurredAt  int64  `json:"occurredAt"`
}

func NewDeliveryCompletedEvent(record domain.DeliveryRecord, now time.Time) DeliveryCompletedEvent {
	return DeliveryCompletedEvent{
		EventID:     uuid.NewString(),
		DeliveryID:  record.ID,
		Date:        domain.DateOf(time.UnixMilli(record.Ctime)),
		TotalSent:   record.TotalSent,
		TotalFailed: record.TotalFailed,
		OccurredAt:  now.UnixMilli(),
	}
}

// PartitionKey 同一天的事件进入同一个分区
func PartitionKey(evt DeliveryCompletedEvent) string {
	return evt.Date
}
