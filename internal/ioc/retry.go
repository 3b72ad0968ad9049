package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"notification-delivery/internal/pkg/retry"
)

// InitRetryExecutor 未配置 retry 时使用默认的指数退避
func InitRetryExecutor() *retry.Executor {
	cfg := retry.DefaultConfig()
	if econf.Get("retry") != nil {
		if err := econf.UnmarshalKey("retry", &cfg); err != nil {
			panic(err)
		}
	}
	strategy, err := retry.NewRetry(cfg)
	if err != nil {
		panic(err)
	}
	return retry.NewExecutor(strategy, retry.DefaultClassifier())
}
