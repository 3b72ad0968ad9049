package ioc

import (
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"notification-delivery/internal/handler/analytics"
	"notification-delivery/internal/handler/jwt"
	"notification-delivery/internal/handler/notification"
)

// InitWebServer 所有接口都需要登录
func InitWebServer(nh *notification.Handler, ah *analytics.Handler) *egin.Component {
	type Config struct {
		Key string `yaml:"key"`
	}
	var cfg Config
	if err := econf.UnmarshalKey("jwt", &cfg); err != nil {
		panic("config err:" + err.Error())
	}

	server := egin.Load("server.http").Build()
	server.Use(jwt.NewJwtAuthBuilder(cfg.Key).Build())
	nh.PrivateRoutes(server.Engine)
	ah.PrivateRoutes(server.Engine)
	return server
}
