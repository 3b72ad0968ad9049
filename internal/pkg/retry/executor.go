package retry

import (
	"context"
	"time"
)

// Executor 按策略重试一个可能失败的操作，每次调用相互独立
type Executor struct {
	strategy   Strategy
	classifier Classifier
}

// NewExecutor 创建重试执行器
func NewExecutor(strategy Strategy, classifier Classifier) *Executor {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Executor{
		strategy:   strategy,
		classifier: classifier,
	}
}

// NewDefaultExecutor 使用默认配置
func NewDefaultExecutor() *Executor {
	strategy, _ := NewRetry(DefaultConfig())
	return NewExecutor(strategy, DefaultClassifier())
}

// Do 执行 op，返回实际调用次数和最后一次错误
// 不可重试的错误或者次数用尽时立刻返回，不再等待
func (e *Executor) Do(ctx context.Context, op func(ctx context.Context) error) (int, error) {
	var retries int32
	for {
		err := op(ctx)
		retries++
		if err == nil {
			return int(retries), nil
		}
		if !e.classifier.Retryable(err) {
			return int(retries), err
		}
		delay, ok := e.strategy.NextWithRetries(retries)
		if !ok {
			return int(retries), err
		}
		if sleep(ctx, delay) != nil {
			return int(retries), err
		}
	}
}

// Execute 带返回值的版本
func Execute[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, int, error) {
	var res T
	attempts, err := e.Do(ctx, func(ctx context.Context) error {
		var er error
		res, er = op(ctx)
		return er
	})
	return res, attempts, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
