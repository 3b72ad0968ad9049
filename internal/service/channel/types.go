package channel

import (
	"context"

	"notification-delivery/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/channel.mock.go -package=channelmocks Channel
type Channel interface {
	Name() domain.Channel
	// Eligible 检查接收者能否通过该渠道触达，不会调用外部服务
	Eligible(ctx context.Context, recipient domain.Recipient) error
	// Send 发送通知，调用方负责重试
	Send(ctx context.Context, recipient domain.Recipient, payload domain.Payload) error
}
