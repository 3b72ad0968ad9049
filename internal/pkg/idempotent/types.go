package idempotent

import "context"

//go:generate mockgen -source=./types.go -destination=./mocks/idempotent.mock.go -package=idempotentmocks IdempotencyService
type IdempotencyService interface {
	// Exists 第一次调用时登记 key 并返回 false，过期前再次调用返回 true
	Exists(ctx context.Context, key string) (bool, error)
	// Del 释放已登记的 key，之后相同的 key 可以再次通过
	Del(ctx context.Context, key string) error
}
