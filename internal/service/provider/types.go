package provider

import (
	"context"
	"fmt"

	"notification-delivery/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/provider.mock.go -package=providermocks Provider
type Provider interface {
	// Send 把消息交给外部服务，只返回是否成功
	Send(ctx context.Context, msg domain.Message) error
}

// StatusError 外部服务返回的非成功响应
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func NewStatusError(provider string, code int, message string) *StatusError {
	return &StatusError{Provider: provider, Code: code, Message: message}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Message)
}

// StatusCode 供重试分类使用
func (e *StatusError) StatusCode() int {
	return e.Code
}
