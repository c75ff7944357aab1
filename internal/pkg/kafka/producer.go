package kafka

import (
	"Quill/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Publisher 帖子变更事件的发布方
type Publisher interface {
	PublishPostEvent(ctx context.Context, event *PostEvent) error
	Close() error
}

type producerImpl struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &producerImpl{producer: producer, topic: cfg.PostTopic}, nil
}

// PublishPostEvent 以帖子 ID 为 key，保证同一帖子的事件落在同一分区
func (s *producerImpl) PublishPostEvent(ctx context.Context, event *PostEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(event.PostID),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "post event published", "type", event.Type, "post_id", event.PostID, "partition", partition, "offset", offset)
	return nil
}

func (s *producerImpl) Close() error {
	return s.producer.Close()
}

// InlinePublisher 未配置 Kafka 时在请求内直接同步索引
type InlinePublisher struct {
	handler *PostsHandler
}

func NewInlinePublisher(handler *PostsHandler) *InlinePublisher {
	return &InlinePublisher{handler: handler}
}

func (s *InlinePublisher) PublishPostEvent(ctx context.Context, event *PostEvent) error {
	return s.handler.Apply(ctx, event)
}

func (s *InlinePublisher) Close() error {
	return nil
}
