package channel

import (
	"fmt"

	"notification-delivery/internal/domain"
)

// Availability 可用性检查的结果
type Availability struct {
	Available   []domain.Channel
	Unavailable []domain.Channel
	Warnings    []string
}

// AvailabilityChecker 根据配置判断渠道是否可用，不做任何 IO
type AvailabilityChecker struct {
	configured func(ch domain.Channel) bool
}

func NewAvailabilityChecker(cfg domain.ChannelsConfig) *AvailabilityChecker {
	return &AvailabilityChecker{configured: cfg.Configured}
}

// Filter 保持请求中的顺序，重复的渠道只算一次
func (c *AvailabilityChecker) Filter(requested []domain.Channel) Availability {
	var res Availability
	seen := make(map[domain.Channel]struct{}, len(requested))
	for _, ch := range requested {
		if _, ok := seen[ch]; ok {
			continue
		}
		seen[ch] = struct{}{}

		switch {
		case !ch.IsValid():
			res.Unavailable = append(res.Unavailable, ch)
			res.Warnings = append(res.Warnings, fmt.Sprintf("unknown channel %q skipped", ch.String()))
		case !c.configured(ch):
			res.Unavailable = append(res.Unavailable, ch)
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s channel is not configured, skipped", ch.String()))
		default:
			res.Available = append(res.Available, ch)
		}
	}
	return res
}
