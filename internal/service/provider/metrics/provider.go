package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/service/provider"
)

const (
	// 摘要指标的分位数配置
	median = 0.5
	p90    = 0.9
	p99    = 0.99

	medianError = 0.05
	p90Error    = 0.01
	p99Error    = 0.001

	maxAgeDuration = 5 * time.Minute

	statusSucceeded = "succeeded"
	statusFailed    = "failed"
)

var (
	sendDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "provider_send_duration_seconds",
			Help: "供应商发送耗时统计（秒）",
			Objectives: map[float64]float64{
				median: medianError,
				p90:    p90Error,
				p99:    p99Error,
			},
			MaxAge: maxAgeDuration,
		},
		[]string{"provider", "channel", "status"},
	)
	sendStatusCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_send_status_total",
			Help: "供应商发送状态统计",
		},
		[]string{"provider", "channel", "status"},
	)
	registerOnce sync.Once

	_ provider.Provider = (*Provider)(nil)
)

// Provider 为供应商添加指标收集的装饰器
type Provider struct {
	provider provider.Provider
	name     string
}

func (p *Provider) Send(ctx context.Context, msg domain.Message) error {
	startTime := time.Now()
	err := p.provider.Send(ctx, msg)

	status := statusSucceeded
	if err != nil {
		status = statusFailed
	}
	sendStatusCounter.WithLabelValues(p.name, msg.Channel.String(), status).Inc()
	sendDurationSummary.WithLabelValues(p.name, msg.Channel.String(), status).
		Observe(time.Since(startTime).Seconds())
	return err
}

// NewProvider 创建一个带有指标收集的供应商，指标只注册一次
func NewProvider(name string, p provider.Provider) *Provider {
	registerOnce.Do(func() {
		prometheus.MustRegister(sendDurationSummary, sendStatusCounter)
	})
	return &Provider{
		provider: p,
		name:     name,
	}
}
