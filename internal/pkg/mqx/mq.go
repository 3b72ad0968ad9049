package mqx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/mq-api"
)

var (
	_ Producer[any] = (*MQProducer[any])(nil)
	_ Consumer      = (*MQConsumer)(nil)
)

// MQProducer 基于 mq-api 的生产者，单机部署或者测试时配合 memory 实现使用
type MQProducer[T any] struct {
	producer mq.Producer
	key      func(evt T) string
}

func NewMQProducer[T any](producer mq.Producer, key func(evt T) string) *MQProducer[T] {
	return &MQProducer[T]{producer: producer, key: key}
}

func (p *MQProducer[T]) Produce(ctx context.Context, evt T) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}
	msg := &mq.Message{Value: data}
	if p.key != nil {
		msg.Key = []byte(p.key(evt))
	}
	_, err = p.producer.Produce(ctx, msg)
	return err
}

// MQConsumer mq-api 消费者，进度由底层自动维护
type MQConsumer struct {
	consumer mq.Consumer
	timeout  time.Duration
}

func NewMQConsumer(consumer mq.Consumer, timeout time.Duration) *MQConsumer {
	return &MQConsumer{consumer: consumer, timeout: timeout}
}

func (c *MQConsumer) Next(ctx context.Context) (*mq.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	msg, err := c.consumer.Consume(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, ErrNoMessage
	}
	return msg, err
}

func (c *MQConsumer) Commit(_ context.Context, _ *mq.Message) error {
	return nil
}

func (c *MQConsumer) Close() error {
	return c.consumer.Close()
}
