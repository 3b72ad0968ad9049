package notification

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"notification-delivery/internal/domain"
)

const (
	metricsMaxAge        = 5 * time.Minute
	metricsP50Percentile = 0.5
	metricsP50Error      = 0.05
	metricsP90Percentile = 0.9
	metricsP90Error      = 0.01
	metricsP99Percentile = 0.99
	metricsP99Error      = 0.001

	methodSendNotification = "send_notification"
	methodNotifyUsers      = "notify_users"
	methodNotifyByRole     = "notify_by_role"
)

var (
	requestDurationSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "delivery_request_duration_seconds",
			Help: "投递请求耗时（秒）",
			Objectives: map[float64]float64{
				metricsP50Percentile: metricsP50Error,
				metricsP90Percentile: metricsP90Error,
				metricsP99Percentile: metricsP99Error,
			},
			MaxAge: metricsMaxAge,
		},
		[]string{"method", "success"},
	)
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_request_total",
			Help: "投递请求数",
		},
		[]string{"method", "success"},
	)
	attemptCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_attempt_total",
			Help: "按渠道统计的投递结果",
		},
		[]string{"channel", "status"},
	)
	metricsRegisterOnce sync.Once

	_ Service = (*MetricsService)(nil)
)

// MetricsService 为投递服务添加指标收集的装饰器
type MetricsService struct {
	svc Service
}

func NewMetricsService(svc Service) *MetricsService {
	metricsRegisterOnce.Do(func() {
		prometheus.MustRegister(requestDurationSummary, requestCounter, attemptCounter)
	})
	return &MetricsService{svc: svc}
}

func (m *MetricsService) SendNotification(ctx context.Context, req domain.NotificationRequest) (domain.SendResult, error) {
	start := time.Now()
	res, err := m.svc.SendNotification(ctx, req)
	m.observe(methodSendNotification, start, res)
	return res, err
}

func (m *MetricsService) NotifyUsers(ctx context.Context, userIDs []int64, req domain.NotificationRequest) (domain.SendResult, error) {
	start := time.Now()
	res, err := m.svc.NotifyUsers(ctx, userIDs, req)
	m.observe(methodNotifyUsers, start, res)
	return res, err
}

func (m *MetricsService) NotifyByRole(ctx context.Context, roles []domain.Role, req domain.NotificationRequest) (domain.SendResult, error) {
	start := time.Now()
	res, err := m.svc.NotifyByRole(ctx, roles, req)
	m.observe(methodNotifyByRole, start, res)
	return res, err
}

func (m *MetricsService) GetDelivery(ctx context.Context, id int64) (domain.DeliveryRecord, error) {
	return m.svc.GetDelivery(ctx, id)
}

func (m *MetricsService) observe(method string, start time.Time, res domain.SendResult) {
	success := "false"
	if res.Success {
		success = "true"
	}
	requestCounter.WithLabelValues(method, success).Inc()
	requestDurationSummary.WithLabelValues(method, success).Observe(time.Since(start).Seconds())
	for ch, c := range res.Results {
		attemptCounter.WithLabelValues(ch.String(), domain.AttemptStatusSent.String()).Add(float64(c.Sent))
		attemptCounter.WithLabelValues(ch.String(), domain.AttemptStatusFailed.String()).Add(float64(c.Failed))
	}
}
