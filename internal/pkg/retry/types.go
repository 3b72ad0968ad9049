package retry

import (
	"fmt"
	"time"

	"notification-delivery/internal/errs"
)

const (
	TypeFixed       = "fixed"
	TypeExponential = "exponential"

	DefaultMaxAttempts     = 3
	DefaultInitialInterval = time.Second
	DefaultMaxInterval     = 10 * time.Second
	DefaultMultiplier      = 2.0
	DefaultMaxJitter       = 0.1
)

// Strategy 重试策略
type Strategy interface {
	// NextWithRetries 已经失败 retries 次后下一次重试前的等待时间，ok 为 false 表示不再重试
	NextWithRetries(retries int32) (time.Duration, bool)
}

type Config struct {
	Type               string                    `json:"type" yaml:"type"`
	FixedInterval      *FixedIntervalConfig      `json:"fixedInterval" yaml:"fixedInterval"`
	ExponentialBackoff *ExponentialBackoffConfig `json:"exponentialBackoff" yaml:"exponentialBackoff"`
}

type FixedIntervalConfig struct {
	Interval time.Duration `json:"interval" yaml:"interval"`
	// MaxRetries 最大尝试次数，包含第一次
	MaxRetries int32 `json:"maxRetries" yaml:"maxRetries"`
}

type ExponentialBackoffConfig struct {
	InitialInterval time.Duration `json:"initialInterval" yaml:"initialInterval"`
	MaxInterval     time.Duration `json:"maxInterval" yaml:"maxInterval"`
	// MaxRetries 最大尝试次数，包含第一次
	MaxRetries int32   `json:"maxRetries" yaml:"maxRetries"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
	// MaxJitter 抖动上限，实际抖动在 [0, MaxJitter] 内均匀分布
	MaxJitter float64 `json:"maxJitter" yaml:"maxJitter"`
}

// DefaultConfig 默认 3 次尝试，1s 起步，翻倍，最长 10s，抖动 10%
func DefaultConfig() Config {
	return Config{
		Type: TypeExponential,
		ExponentialBackoff: &ExponentialBackoffConfig{
			InitialInterval: DefaultInitialInterval,
			MaxInterval:     DefaultMaxInterval,
			MaxRetries:      DefaultMaxAttempts,
			Multiplier:      DefaultMultiplier,
			MaxJitter:       DefaultMaxJitter,
		},
	}
}

// NewRetry 根据配置创建重试策略
func NewRetry(cfg Config) (Strategy, error) {
	switch cfg.Type {
	case TypeFixed:
		if cfg.FixedInterval == nil {
			return nil, fmt.Errorf("%w: 缺少 fixedInterval 配置", errs.ErrInvalidParameter)
		}
		if cfg.FixedInterval.MaxRetries <= 0 || cfg.FixedInterval.Interval < 0 {
			return nil, fmt.Errorf("%w: fixedInterval 配置非法 %+v", errs.ErrInvalidParameter, *cfg.FixedInterval)
		}
		return &fixedIntervalStrategy{cfg: *cfg.FixedInterval}, nil
	case TypeExponential:
		if cfg.ExponentialBackoff == nil {
			return nil, fmt.Errorf("%w: 缺少 exponentialBackoff 配置", errs.ErrInvalidParameter)
		}
		c := *cfg.ExponentialBackoff
		if c.MaxRetries <= 0 || c.InitialInterval < 0 || c.MaxInterval < c.InitialInterval {
			return nil, fmt.Errorf("%w: exponentialBackoff 配置非法 %+v", errs.ErrInvalidParameter, c)
		}
		if c.Multiplier < 1 {
			c.Multiplier = DefaultMultiplier
		}
		if c.MaxJitter < 0 {
			c.MaxJitter = 0
		}
		return &exponentialBackoffStrategy{cfg: c, jitter: defaultJitter}, nil
	default:
		return nil, fmt.Errorf("%w: 未知重试策略 %q", errs.ErrInvalidParameter, cfg.Type)
	}
}
