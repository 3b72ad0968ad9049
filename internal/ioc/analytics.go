package ioc

import (
	"time"

	"github.com/gotomicro/ego/core/econf"
	"notification-delivery/internal/event/delivery"
	"notification-delivery/internal/pkg/mqx"
	"notification-delivery/internal/pkg/retry"
	"notification-delivery/internal/service/analytics"
)

const (
	analyticsModeLocal = "local"
	analyticsModeKafka = "kafka"
	analyticsModeOff   = "off"
)

type analyticsConfig struct {
	// Mode local 在本进程任务池重算，kafka 发送事件由消费者重算，off 只依赖定时补算
	Mode          string        `yaml:"mode"`
	SubmitTimeout time.Duration `yaml:"submitTimeout"`
	Timeout       time.Duration `yaml:"timeout"`
	BackfillDays  int           `yaml:"backfillDays"`
	// Pool local 模式下重算用的任务池，和投递的任务池分开
	Pool poolConfig `yaml:"pool"`
}

func loadAnalyticsConfig() analyticsConfig {
	cfg := analyticsConfig{
		Mode:          analyticsModeLocal,
		SubmitTimeout: time.Second,
		Timeout:       30 * time.Second,
		BackfillDays:  7,
		Pool: poolConfig{
			InitGo:           1,
			CoreGo:           1,
			MaxGo:            2,
			MaxIdleTime:      time.Minute,
			QueueSize:        64,
			QueueBacklogRate: 0.5,
		},
	}
	if err := econf.UnmarshalKey("analytics", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

// InitAnalyticsTrigger 投递完成后如何触发统计
func InitAnalyticsTrigger(svc analytics.Service) analytics.Trigger {
	cfg := loadAnalyticsConfig()
	switch cfg.Mode {
	case analyticsModeKafka:
		kcfg := loadKafkaConfig()
		initTopic(kcfg, delivery.EventName)
		producer := delivery.NewDeliveryCompletedEventProducer(initKafkaProducer(kcfg))
		return delivery.NewEventTrigger(producer, cfg.Timeout)
	case analyticsModeOff:
		return analytics.NopTrigger{}
	default:
		return analytics.NewLocalTrigger(svc, newTaskPool(cfg.Pool), cfg.SubmitTimeout, cfg.Timeout)
	}
}

// InitTasks kafka 模式下启动投递完成事件的消费者
func InitTasks(svc analytics.Service, executor *retry.Executor) []Task {
	cfg := loadAnalyticsConfig()
	if cfg.Mode != analyticsModeKafka {
		return nil
	}
	const readTimeout = time.Second
	kcfg := loadKafkaConfig()
	consumer := mqx.NewKafkaConsumer(initKafkaConsumer(kcfg, delivery.EventName), readTimeout)
	return []Task{delivery.NewConsumer(svc, consumer, executor)}
}
