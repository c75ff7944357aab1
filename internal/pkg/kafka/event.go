package kafka

import (
	"errors"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	EventUpsert = "upsert"
	EventDelete = "delete"
)

// PostEvent 帖子变更事件，只携带 ID，消费方回表读取最新数据
type PostEvent struct {
	Type   string `json:"type"`
	PostID string `json:"post_id"`
	TS     int64  `json:"ts"`
}

func NewPostEvent(eventType, postID string) *PostEvent {
	return &PostEvent{Type: eventType, PostID: postID, TS: time.Now().UnixMilli()}
}

// ToPostEvent 将kafka消息转换为帖子事件
func ToPostEvent(msg *sarama.ConsumerMessage) (*PostEvent, error) {
	var event PostEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, err
	}
	if event.PostID == "" {
		return nil, errors.New("post id is empty")
	}
	if event.Type != EventUpsert && event.Type != EventDelete {
		return nil, errors.New("unknown event type: " + event.Type)
	}
	return &event, nil
}
