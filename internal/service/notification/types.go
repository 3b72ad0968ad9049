package notification

import (
	"context"

	"notification-delivery/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/notification.mock.go -package=notificationmocks Service
type Service interface {
	// SendNotification 按 req.Roles 找到接收者，在所有可用渠道上投递
	SendNotification(ctx context.Context, req domain.NotificationRequest) (domain.SendResult, error)
	// NotifyUsers 投递给指定的用户
	NotifyUsers(ctx context.Context, userIDs []int64, req domain.NotificationRequest) (domain.SendResult, error)
	// NotifyByRole 投递给指定角色的用户
	NotifyByRole(ctx context.Context, roles []domain.Role, req domain.NotificationRequest) (domain.SendResult, error)
	// GetDelivery 查询投递记录
	GetDelivery(ctx context.Context, id int64) (domain.DeliveryRecord, error)
}
