package ioc

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

type kafkaConfig struct {
	Addr       string `yaml:"addr"`
	GroupID    string `yaml:"groupId"`
	Partitions int    `yaml:"partitions"`
}

func loadKafkaConfig() kafkaConfig {
	cfg := kafkaConfig{GroupID: "delivery-analytics", Partitions: 1}
	if err := econf.UnmarshalKey("kafka", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func initKafkaProducer(cfg kafkaConfig) *kafka.Producer {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Addr,
	})
	if err != nil {
		panic(fmt.Sprintf("创建生产者失败: %v", err))
	}
	return producer
}

// initKafkaConsumer 关闭自动提交，由消费者处理完再提交
func initKafkaConsumer(cfg kafkaConfig, topic string) *kafka.Consumer {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Addr,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		panic(fmt.Sprintf("创建消费者失败: %v", err))
	}
	if err = consumer.SubscribeTopics([]string{topic}, nil); err != nil {
		panic(fmt.Sprintf("订阅 topic 失败: %v", err))
	}
	return consumer
}

func initTopic(cfg kafkaConfig, topics ...string) {
	adminClient, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Addr,
	})
	if err != nil {
		panic(fmt.Sprintf("创建kafka连接失败: %v", err))
	}
	defer adminClient.Close()

	specs := make([]kafka.TopicSpecification, 0, len(topics))
	for _, t := range topics {
		specs = append(specs, kafka.TopicSpecification{Topic: t, NumPartitions: cfg.Partitions, ReplicationFactor: 1})
	}
	const timeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	results, err := adminClient.CreateTopics(ctx, specs)
	if err != nil {
		panic(fmt.Sprintf("创建topic失败: %v", err))
	}
	for _, result := range results {
		if result.Error.Code() != kafka.ErrNoError && result.Error.Code() != kafka.ErrTopicAlreadyExists {
			elog.DefaultLogger.Error("创建topic失败", elog.String("topic", result.Topic), elog.FieldErr(result.Error))
		}
	}
}
