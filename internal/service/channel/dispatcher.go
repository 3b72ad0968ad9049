package channel

import (
	"fmt"

	"notification-delivery/internal/domain"
	"notification-delivery/internal/errs"
)

// Dispatcher 按渠道找到对应的 Channel
type Dispatcher struct {
	channels map[domain.Channel]Channel
}

// NewDispatcher 创建渠道分发器
func NewDispatcher(channels ...Channel) *Dispatcher {
	m := make(map[domain.Channel]Channel, len(channels))
	for _, c := range channels {
		m[c.Name()] = c
	}
	return &Dispatcher{channels: m}
}

func (d *Dispatcher) Channel(ch domain.Channel) (Channel, error) {
	c, ok := d.channels[ch]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoAvailableChannel, ch)
	}
	return c, nil
}
