package channel

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"notification-delivery/internal/errs"
	"notification-delivery/internal/pkg/retry"
)

// 写入投递记录、展示给用户的错误信息
const (
	MsgContactUnavailable = "contact info not available"
	MsgRecipientExcluded  = "excluded: internal organization address"
	MsgDeviceGone         = "recipient's device is no longer registered"
	MsgRateLimited        = "channel is rate limited, please try again later"
	MsgServiceUnavailable = "delivery service temporarily unavailable"
	MsgNetworkError       = "network error while contacting delivery service"
	MsgAuthFailed         = "delivery service rejected credentials"
	MsgInvalidRecipient   = "recipient address rejected by delivery service"
	MsgDeliveryFailed     = "delivery failed"
	MsgDeliveryInterrupt  = "delivery interrupted"
)

type sanitizeRule struct {
	msg      string
	sentinel []error
	codes    []int
	patterns []string
	netErr   bool
}

// 按顺序匹配，先命中的生效
var sanitizeRules = []sanitizeRule{
	{
		msg:      MsgContactUnavailable,
		sentinel: []error{errs.ErrContactUnavailable, errs.ErrSubscriptionNotFound},
	},
	{
		msg:      MsgRecipientExcluded,
		sentinel: []error{errs.ErrRecipientExcluded},
	},
	{
		msg:      MsgDeviceGone,
		sentinel: []error{errs.ErrSubscriptionGone},
		codes:    []int{http.StatusGone},
		patterns: []string{"not registered", "notregistered", "invalid registration", "unsubscribed"},
	},
	{
		msg:      MsgRateLimited,
		sentinel: []error{errs.ErrRateLimited},
		codes:    []int{http.StatusTooManyRequests},
		patterns: []string{"rate limit", "too many requests", "throttl"},
	},
	{
		msg:      MsgServiceUnavailable,
		sentinel: []error{errs.ErrCircuitOpen},
		codes: []int{
			http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable,
		},
		patterns: []string{"service unavailable", "temporarily unavailable", "circuit breaker"},
	},
	{
		msg:      MsgNetworkError,
		sentinel: []error{context.DeadlineExceeded},
		codes:    []int{http.StatusRequestTimeout, http.StatusGatewayTimeout},
		netErr:   true,
		patterns: []string{
			"timeout", "timed out", "network", "connection reset", "connection refused",
			"econnreset", "etimedout", "no such host", "enotfound", "eai_again",
		},
	},
	{
		msg:      MsgAuthFailed,
		codes:    []int{http.StatusUnauthorized, http.StatusForbidden},
		patterns: []string{"unauthorized", "forbidden", "invalid credentials", "authentication", "api key"},
	},
	{
		msg:      MsgInvalidRecipient,
		sentinel: []error{errs.ErrInvalidRecipient},
		patterns: []string{"invalid recipient", "invalid phone", "invalid email", "invalid address"},
	},
}

// Sanitize 把技术错误翻译成可以给用户看的信息，原始错误只进日志
func Sanitize(err error) string {
	if err == nil {
		return ""
	}
	code := 0
	var sc retry.StatusCoder
	if errors.As(err, &sc) {
		code = sc.StatusCode()
	}
	var ne net.Error
	isNetErr := errors.As(err, &ne)
	msg := strings.ToLower(err.Error())

	for _, rule := range sanitizeRules {
		if rule.match(err, code, msg, isNetErr) {
			return rule.msg
		}
	}
	return MsgDeliveryFailed
}

func (r sanitizeRule) match(err error, code int, msg string, isNetErr bool) bool {
	if r.netErr && isNetErr {
		return true
	}
	for _, target := range r.sentinel {
		if errors.Is(err, target) {
			return true
		}
	}
	for _, c := range r.codes {
		if c == code {
			return true
		}
	}
	for _, p := range r.patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
