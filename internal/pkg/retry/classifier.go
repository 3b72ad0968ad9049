package retry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"notification-delivery/internal/errs"
)

// Classifier 判断错误是否值得重试
type Classifier interface {
	Retryable(err error) bool
}

type ClassifierFunc func(err error) bool

func (f ClassifierFunc) Retryable(err error) bool {
	return f(err)
}

// StatusCoder 携带 HTTP 状态码的错误
type StatusCoder interface {
	StatusCode() int
}

var (
	retryableStatusCodes = map[int]struct{}{
		http.StatusRequestTimeout:      {},
		http.StatusTooManyRequests:     {},
		http.StatusInternalServerError: {},
		http.StatusBadGateway:          {},
		http.StatusServiceUnavailable:  {},
		http.StatusGatewayTimeout:      {},
	}

	// 已经小写
	transientPatterns = []string{
		"network",
		"timeout",
		"timed out",
		"connection reset",
		"connection refused",
		"econnreset",
		"econnrefused",
		"etimedout",
		"rate limit",
		"too many requests",
		"service unavailable",
		"temporarily unavailable",
		"no such host",
		"enotfound",
		"eai_again",
	}

	terminalErrors = []error{
		errs.ErrContactUnavailable,
		errs.ErrRecipientExcluded,
		errs.ErrSubscriptionGone,
		errs.ErrInvalidRecipient,
		errs.ErrInvalidParameter,
		context.Canceled,
	}

	_ Classifier = ClassifierFunc(nil)
)

// DefaultClassifier 状态码优先，其次匹配错误信息
func DefaultClassifier() Classifier {
	return ClassifierFunc(IsRetryable)
}

func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	for _, t := range terminalErrors {
		if errors.Is(err, t) {
			return false
		}
	}
	if errors.Is(err, errs.ErrRateLimited) ||
		errors.Is(err, errs.ErrCircuitOpen) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		_, ok := retryableStatusCodes[sc.StatusCode()]
		return ok
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// IsRetryableStatus 状态码是否属于可重试范围
func IsRetryableStatus(code int) bool {
	_, ok := retryableStatusCodes[code]
	return ok
}
