package ioc

import (
	"net/http"
	"time"

	"github.com/go-kratos/aegis/circuitbreaker/sre"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
	"notification-delivery/internal/domain"
	"notification-delivery/internal/pkg/ratelimit"
	"notification-delivery/internal/repository"
	"notification-delivery/internal/service/channel"
	"notification-delivery/internal/service/provider"
	"notification-delivery/internal/service/provider/circuitbreaker"
	"notification-delivery/internal/service/provider/console"
	"notification-delivery/internal/service/provider/email"
	"notification-delivery/internal/service/provider/metrics"
	"notification-delivery/internal/service/provider/push"
	ratelimitprovider "notification-delivery/internal/service/provider/ratelimit"
	"notification-delivery/internal/service/provider/sequential"
	"notification-delivery/internal/service/provider/sms"
	"notification-delivery/internal/service/provider/sms/client"
	"notification-delivery/internal/service/provider/tracing"
	"notification-delivery/internal/service/provider/whatsapp"
)

// InitChannelsConfig 渠道凭证在启动时读取一次
func InitChannelsConfig() domain.ChannelsConfig {
	var cfg domain.ChannelsConfig
	if err := econf.UnmarshalKey("channels", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

type providerDecorator struct {
	limiter ratelimit.Limiter
	breaker breakerConfig
}

type breakerConfig struct {
	Success float64       `yaml:"success"`
	Request int64         `yaml:"request"`
	Bucket  int           `yaml:"bucket"`
	Window  time.Duration `yaml:"window"`
}

func newProviderDecorator(cmd redis.Cmdable) providerDecorator {
	type Config struct {
		Interval time.Duration `yaml:"interval"`
		Rate     int           `yaml:"rate"`
		Breaker  breakerConfig `yaml:"breaker"`
	}
	cfg := Config{
		Interval: time.Second,
		Rate:     100,
		Breaker: breakerConfig{
			Success: 0.6,
			Request: 100,
			Bucket:  10,
			Window:  3 * time.Second,
		},
	}
	if err := econf.UnmarshalKey("ratelimit", &cfg); err != nil {
		panic(err)
	}
	return providerDecorator{
		limiter: ratelimit.NewRedisSlidingWindowLimiter(cmd, cfg.Interval, cfg.Rate),
		breaker: cfg.Breaker,
	}
}

// decorate 由外到内：限流、熔断、链路追踪、指标
func (d providerDecorator) decorate(name string, p provider.Provider) provider.Provider {
	breaker := sre.NewBreaker(
		sre.WithSuccess(d.breaker.Success),
		sre.WithRequest(d.breaker.Request),
		sre.WithBucket(d.breaker.Bucket),
		sre.WithWindow(d.breaker.Window),
	)
	var res provider.Provider = metrics.NewProvider(name, p)
	res = tracing.NewProvider(res, name)
	res = circuitbreaker.NewProvider(res, breaker)
	return ratelimitprovider.NewProvider(res, d.limiter, name)
}

// InitDispatcher 为每个配置齐全的渠道装配 provider，Console 模式下全部输出到日志
func InitDispatcher(cfg domain.ChannelsConfig, cmd redis.Cmdable, subRepo repository.SubscriptionRepository) *channel.Dispatcher {
	if cfg.Console {
		p := console.NewProvider()
		return channel.NewDispatcher(
			channel.NewPushChannel(p, subRepo),
			channel.NewEmailChannel(p, cfg.Email),
			channel.NewWhatsAppChannel(p, cfg.WhatsApp.DefaultCountryCode),
			channel.NewSMSChannel(p, cfg.SMS.DefaultCountryCode),
		)
	}

	d := newProviderDecorator(cmd)
	channels := make([]channel.Channel, 0, len(domain.AllChannels))
	if cfg.Configured(domain.ChannelPush) {
		p := push.NewProvider(cfg.Push, &http.Client{Timeout: 10 * time.Second})
		channels = append(channels, channel.NewPushChannel(d.decorate("webpush", p), subRepo))
	}
	if cfg.Configured(domain.ChannelEmail) {
		p := email.NewProvider(email.NewPostmarkClient(cfg.Email), cfg.Email)
		channels = append(channels, channel.NewEmailChannel(d.decorate("postmark", p), cfg.Email))
	}
	if cfg.Configured(domain.ChannelWhatsApp) {
		p := whatsapp.NewProvider(&http.Client{Timeout: 10 * time.Second}, cfg.WhatsApp)
		channels = append(channels, channel.NewWhatsAppChannel(d.decorate("whatsapp", p), cfg.WhatsApp.DefaultCountryCode))
	}
	if cfg.Configured(domain.ChannelSMS) {
		channels = append(channels, channel.NewSMSChannel(newSMSProvider(cfg.SMS, d), cfg.SMS.DefaultCountryCode))
	}
	return channel.NewDispatcher(channels...)
}

// newSMSProvider 按配置顺序依次尝试各个短信供应商
func newSMSProvider(cfg domain.SMSConfig, d providerDecorator) provider.Provider {
	providers := make([]provider.Provider, 0, 2)
	if cfg.Aliyun.Configured() {
		c, err := client.NewAliyunSMS(cfg.Aliyun.RegionID, cfg.Aliyun.AccessKeyID, cfg.Aliyun.AccessKeySecret)
		if err != nil {
			panic(err)
		}
		p := sms.NewSMSProvider("aliyun", c, cfg.Aliyun.SignName, cfg.Aliyun.TemplateCode)
		providers = append(providers, d.decorate("aliyun", p))
	}
	if cfg.Tencent.Configured() {
		c, err := client.NewTencentCloudSMS(cfg.Tencent.RegionID, cfg.Tencent.SecretID, cfg.Tencent.SecretKey, cfg.Tencent.AppID)
		if err != nil {
			panic(err)
		}
		p := sms.NewSMSProvider("tencent", c, cfg.Tencent.SignName, cfg.Tencent.TemplateID)
		providers = append(providers, d.decorate("tencent", p))
	}
	elog.DefaultLogger.Info("短信供应商", elog.Int("count", len(providers)))
	return sequential.NewProvider(providers...)
}
