//go:build wireinject

package ioc

import (
	"github.com/google/wire"
	analyticshandler "notification-delivery/internal/handler/analytics"
	notificationhandler "notification-delivery/internal/handler/notification"
	prodioc "notification-delivery/internal/ioc"
	"notification-delivery/internal/repository"
	"notification-delivery/internal/repository/cache"
	"notification-delivery/internal/repository/cache/local"
	"notification-delivery/internal/repository/cache/redis"
	"notification-delivery/internal/repository/dao"
	"notification-delivery/internal/service/analytics"
	"notification-delivery/internal/service/channel"
	"notification-delivery/internal/service/directory"
)

var (
	BaseSet = wire.NewSet(
		prodioc.InitDB,
		prodioc.InitRedisClient,
		prodioc.InitRedisCmd,
		prodioc.InitGoCache,
		prodioc.InitTaskPool,
		prodioc.InitRetryExecutor,
		prodioc.InitIDGenerator,
		prodioc.InitIdempotencyService,
	)
	repositorySet = wire.NewSet(
		dao.NewDeliveryDAO,
		dao.NewAnalyticsDAO,
		dao.NewUserDAO,
		dao.NewSubscriptionDAO,
		dao.NewTemplateDAO,
		redis.NewAnalyticsCache,
		local.NewSubscriptionCache,
		wire.Bind(new(cache.SubscriptionCache), new(*local.SubscriptionCache)),
		repository.NewDeliveryRepository,
		repository.NewAnalyticsRepository,
		repository.NewUserRepository,
		repository.NewSubscriptionRepository,
		repository.NewTemplateRepository,
	)
	channelSet = wire.NewSet(
		prodioc.InitChannelsConfig,
		prodioc.InitDispatcher,
		channel.NewAvailabilityChecker,
	)
	analyticsSvcSet = wire.NewSet(
		analytics.NewService,
		prodioc.InitAnalyticsTrigger,
		prodioc.InitBackfillCron,
	)
	notificationSvcSet = wire.NewSet(
		directory.NewDirectory,
		prodioc.InitNotificationService,
		prodioc.InitStaleDeliveryCron,
	)
)

func InitApp() *prodioc.App {
	wire.Build(
		// 基础设施
		BaseSet,
		repositorySet,

		// 渠道
		channelSet,

		// 统计
		analyticsSvcSet,

		// 投递
		notificationSvcSet,

		// HTTP 服务器
		notificationhandler.NewHandler,
		analyticshandler.NewHandler,
		prodioc.InitWebServer,
		prodioc.InitTasks,
		prodioc.Crons,
		wire.Struct(new(prodioc.App), "*"),
	)
	return new(prodioc.App)
}
