package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

var (
	_ Strategy = (*fixedIntervalStrategy)(nil)
	_ Strategy = (*exponentialBackoffStrategy)(nil)
)

type fixedIntervalStrategy struct {
	cfg FixedIntervalConfig
}

func (s *fixedIntervalStrategy) NextWithRetries(retries int32) (time.Duration, bool) {
	if retries >= s.cfg.MaxRetries {
		return 0, false
	}
	return s.cfg.Interval, true
}

type exponentialBackoffStrategy struct {
	cfg ExponentialBackoffConfig
	// jitter 返回 [0, 1) 的随机数
	jitter func() float64
}

func defaultJitter() float64 {
	return rand.Float64()
}

// NextWithRetries 第 n 次失败后等待 min(initial * multiplier^(n-1) * (1 + jitter), max)
func (s *exponentialBackoffStrategy) NextWithRetries(retries int32) (time.Duration, bool) {
	if retries <= 0 {
		retries = 1
	}
	if retries >= s.cfg.MaxRetries {
		return 0, false
	}
	backoff := float64(s.cfg.InitialInterval) * math.Pow(s.cfg.Multiplier, float64(retries-1))
	backoff *= 1 + s.jitter()*s.cfg.MaxJitter
	if backoff >= float64(s.cfg.MaxInterval) {
		return s.cfg.MaxInterval, true
	}
	return time.Duration(backoff), true
}
