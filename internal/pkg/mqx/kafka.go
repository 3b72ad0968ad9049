package mqx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api"
)

var (
	_ Producer[any] = (*GeneralProducer[any])(nil)
	_ Consumer      = (*KafkaConsumer)(nil)
)

// GeneralProducer 把事件序列化为 JSON 后写入 kafka
type GeneralProducer[T any] struct {
	producer *kafka.Producer
	topic    string
	// key 从事件中取分区键，为空时不指定
	key func(evt T) string
}

func NewGeneralProducer[T any](producer *kafka.Producer, topic string, key func(evt T) string) *GeneralProducer[T] {
	return &GeneralProducer[T]{
		producer: producer,
		topic:    topic,
		key:      key,
	}
}

func (p *GeneralProducer[T]) Produce(ctx context.Context, evt T) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Value:          data,
	}
	if p.key != nil {
		msg.Key = []byte(p.key(evt))
	}
	deliveryChan := make(chan kafka.Event, 1)
	if err = p.producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("发送事件失败: %w", err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("未知的投递结果 %v", e)
		}
		return m.TopicPartition.Error
	}
}

// KafkaConsumer 把 kafka 消息转换为 mq.Message
type KafkaConsumer struct {
	consumer *kafka.Consumer
	timeout  time.Duration
}

func NewKafkaConsumer(consumer *kafka.Consumer, timeout time.Duration) *KafkaConsumer {
	return &KafkaConsumer{consumer: consumer, timeout: timeout}
}

func (c *KafkaConsumer) Next(ctx context.Context) (*mq.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	msg, err := c.consumer.ReadMessage(c.timeout)
	if err != nil {
		var kErr kafka.Error
		if errors.As(err, &kErr) && kErr.Code() == kafka.ErrTimedOut {
			return nil, ErrNoMessage
		}
		return nil, err
	}
	topic := ""
	if msg.TopicPartition.Topic != nil {
		topic = *msg.TopicPartition.Topic
	}
	return &mq.Message{
		Topic:     topic,
		Partition: int64(msg.TopicPartition.Partition),
		Offset:    int64(msg.TopicPartition.Offset),
		Key:       msg.Key,
		Value:     msg.Value,
	}, nil
}

func (c *KafkaConsumer) Commit(_ context.Context, msg *mq.Message) error {
	topic := msg.Topic
	_, err := c.consumer.CommitOffsets([]kafka.TopicPartition{{
		Topic:     &topic,
		Partition: int32(msg.Partition),
		Offset:    kafka.Offset(msg.Offset + 1),
	}})
	return err
}

func (c *KafkaConsumer) Close() error {
	return c.consumer.Close()
}
