package tracing

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/service/provider"
)

var _ provider.Provider = (*Provider)(nil)

// Provider 为供应商添加链路追踪的装饰器
type Provider struct {
	provider provider.Provider
	tracer   trace.Tracer
	name     string
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	ctx, span := p.tracer.Start(ctx, "Provider.Send",
		trace.WithAttributes(
			attribute.String("provider.name", p.name),
			attribute.String("message.channel", msg.Channel.String()),
			attribute.String("message.userId", strconv.FormatInt(msg.UserID, 10)),
		))
	defer span.End()

	err := p.provider.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// NewProvider name 类似于 aliyun, postmark
func NewProvider(p provider.Provider, name string) *Provider {
	return &Provider{
		provider: p,
		name:     name,
		tracer:   otel.Tracer("notification-delivery/provider"),
	}
}
