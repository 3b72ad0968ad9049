package console

import (
	"context"

	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 只把消息输出到日志，本地开发时替代真实渠道
type Provider struct {
	logger *elog.Component
}

func NewProvider() *Provider {
	return &Provider{
		logger: elog.DefaultLogger.With(elog.FieldComponent("console")),
	}
}

func (p *Provider) Send(_ context.Context, msg domain.Message) error {
	p.logger.Info("发送通知",
		elog.String("channel", msg.Channel.String()),
		elog.Int64("userId", msg.UserID),
		elog.String("to", msg.To),
		elog.String("title", msg.Title))
	return nil
}
