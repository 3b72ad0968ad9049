package errs

import "errors"

var (
	ErrInvalidParameter   = errors.New("参数错误")
	ErrNoAvailableChannel = errors.New("no delivery channel is configured for this request")
	ErrNoRecipients       = errors.New("no recipients matched the request")
	ErrSendFailed         = errors.New("发送失败")

	// 接收者不满足渠道发送条件，不可重试
	ErrContactUnavailable = errors.New("contact info not available")
	ErrRecipientExcluded  = errors.New("recipient excluded: internal organization address")
	ErrSubscriptionGone   = errors.New("push subscription not registered")
	ErrInvalidRecipient   = errors.New("invalid recipient")

	ErrRateLimited = errors.New("rate limit exceeded")
	ErrCircuitOpen = errors.New("service unavailable: circuit breaker open")

	ErrDeliveryNotFound     = errors.New("投递记录不存在")
	ErrAnalyticsNotFound    = errors.New("统计数据不存在")
	ErrSubscriptionNotFound = errors.New("推送订阅不存在")
	ErrTemplateNotFound     = errors.New("模板不存在")
)
