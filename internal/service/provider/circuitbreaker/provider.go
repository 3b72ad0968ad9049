package circuitbreaker

import (
	"context"
	"fmt"

	"github.com/go-kratos/aegis/circuitbreaker"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/retry"
	"notification-delivery/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 熔断装饰器，只有可重试的错误才计入失败
type Provider struct {
	provider provider.Provider
	breaker  circuitbreaker.CircuitBreaker
}

func NewProvider(p provider.Provider, breaker circuitbreaker.CircuitBreaker) *Provider {
	return &Provider{provider: p, breaker: breaker}
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	if err := p.breaker.Allow(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrCircuitOpen, err)
	}
	err := p.provider.Send(ctx, msg)
	switch {
	case err == nil:
		p.breaker.MarkSuccess()
	case retry.IsRetryable(err):
		p.breaker.MarkFailed()
	default:
		// 接收者相关的错误说明服务本身是通的
		p.breaker.MarkSuccess()
	}
	return err
}
