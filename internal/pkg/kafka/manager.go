package kafka

import (
	"Quill/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理 Kafka 消费者
type ConsumerManager struct {
	topic        string
	postConsumer sarama.ConsumerGroup
	postHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg config.KafkaConfig, postHandler *PostsHandler) (*ConsumerManager, error) {
	postConsumer, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		topic:        cfg.PostTopic,
		postConsumer: postConsumer,
		postHandler:  postHandler,
	}, nil
}

// Start 启动消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.postConsumer.Errors() {
			log.Error("Error from consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("Post consumer started", "topic", m.topic)
		for {
			if err := m.postConsumer.Consume(ctx, []string{m.topic}, m.postHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.postConsumer.Close(); err != nil {
		log.Error("Failed to close post consumer", "err", err)
	}
	return nil
}
