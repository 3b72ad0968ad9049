package ratelimit

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/ratelimit"
	"notification-delivery/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 按供应商限流，限流时返回可重试的 errs.ErrRateLimited
type Provider struct {
	provider provider.Provider
	limiter  ratelimit.Limiter
	key      string
	logger   *elog.Component
}

func NewProvider(p provider.Provider, limiter ratelimit.Limiter, name string) *Provider {
	return &Provider{
		provider: p,
		limiter:  limiter,
		key:      "provider:" + name,
		logger:   elog.DefaultLogger,
	}
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	limited, err := p.limiter.Limit(ctx, p.key)
	if err != nil {
		// 限流器不可用时放行
		p.logger.Warn("限流器异常", elog.String("key", p.key), elog.FieldErr(err))
	} else if limited {
		return fmt.Errorf("%w: %s", errs.ErrRateLimited, p.key)
	}
	return p.provider.Send(ctx, msg)
}
