package ioc

import (
	"time"

	"github.com/ecodeclub/ekit/pool"
	"github.com/gotomicro/ego/core/econf"
	"notification-delivery/internal/pkg/idgenerator"
	"notification-delivery/internal/pkg/retry"
	"notification-delivery/internal/repository"
	"notification-delivery/internal/service/analytics"
	"notification-delivery/internal/service/channel"
	"notification-delivery/internal/service/directory"
	"notification-delivery/internal/service/notification"
	notificationtask "notification-delivery/internal/service/notification/task"
)

type deliveryConfig struct {
	// SendTimeout 单次调用外部服务的超时
	SendTimeout time.Duration `yaml:"sendTimeout"`
	// StaleThreshold 停留在 dispatching 超过该时长的记录视为中断，需要大于一次投递的最长耗时
	StaleThreshold time.Duration `yaml:"staleThreshold"`
}

func loadDeliveryConfig() deliveryConfig {
	cfg := deliveryConfig{
		SendTimeout:    10 * time.Second,
		StaleThreshold: 30 * time.Minute,
	}
	if err := econf.UnmarshalKey("delivery", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func InitIDGenerator() *idgenerator.Generator {
	return idgenerator.NewGenerator()
}

// InitNotificationService 投递服务外面包一层指标
func InitNotificationService(
	checker *channel.AvailabilityChecker,
	dispatcher *channel.Dispatcher,
	dir directory.Directory,
	repo repository.DeliveryRepository,
	templateRepo repository.TemplateRepository,
	trigger analytics.Trigger,
	executor *retry.Executor,
	taskPool pool.TaskPool,
	idGenerator *idgenerator.Generator,
) notification.Service {
	cfg := loadDeliveryConfig()
	svc := notification.NewService(checker, dispatcher, dir, repo, templateRepo,
		trigger, executor, taskPool, idGenerator, cfg.SendTimeout)
	return notification.NewMetricsService(svc)
}

func InitStaleDeliveryCron(repo repository.DeliveryRepository, trigger analytics.Trigger) *notificationtask.StaleDeliveryCron {
	return notificationtask.NewStaleDeliveryCron(repo, trigger, loadDeliveryConfig().StaleThreshold)
}
