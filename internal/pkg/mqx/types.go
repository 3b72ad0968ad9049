package mqx

import (
	"context"
	"errors"

	"github.com/ecodeclub/mq-api"
)

// ErrNoMessage 在等待时间内没有读到消息
var ErrNoMessage = errors.New("没有可消费的消息")

//go:generate mockgen -source=./types.go -destination=./mocks/mqx.mock.go -package=mqxmocks Consumer
type Producer[T any] interface {
	Produce(ctx context.Context, evt T) error
}

// Consumer 屏蔽 kafka 与 mq-api 差异的消费端
type Consumer interface {
	// Next 读取下一条消息，没有消息时返回 ErrNoMessage
	Next(ctx context.Context) (*mq.Message, error)
	// Commit 提交消费进度
	Commit(ctx context.Context, msg *mq.Message) error
	Close() error
}
