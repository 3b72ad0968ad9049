package sequential

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 按顺序尝试多个供应商，第一个成功即返回
type Provider struct {
	providers []provider.Provider
	logger    *elog.Component
}

func NewProvider(providers ...provider.Provider) *Provider {
	return &Provider{
		providers: providers,
		logger:    elog.DefaultLogger,
	}
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	if len(p.providers) == 0 {
		return fmt.Errorf("%w: 没有可用的供应商", errs.ErrSendFailed)
	}
	var result error
	for idx, pr := range p.providers {
		err := pr.Send(ctx, msg)
		if err == nil {
			return nil
		}
		p.logger.Warn("供应商发送失败，尝试下一个",
			elog.Int("index", idx),
			elog.String("channel", msg.Channel.String()),
			elog.FieldErr(err))
		result = multierror.Append(result, err)
		if ctx.Err() != nil {
			break
		}
	}
	return result
}
