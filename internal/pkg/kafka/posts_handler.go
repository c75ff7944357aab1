package kafka

import (
	"Quill/internal/pkg/es"
	"Quill/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// PostsHandler 消费帖子事件，保持搜索索引与数据库一致
type PostsHandler struct {
	postDBRepo repository.PostRepo
	postESRepo es.PostRepo
}

func NewPostsHandler(postDBRepo repository.PostRepo, postESRepo es.PostRepo) *PostsHandler {
	return &PostsHandler{
		postDBRepo: postDBRepo,
		postESRepo: postESRepo,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim", "partition", claim.Partition())
	err := defaultBatch.consume(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	log.Info("topic-post consume claim end")
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToPostEvent(msg)
	if err != nil {
		// 格式错误的消息重试也无法成功，记录后跳过
		log.Error("invalid post event, skipped", "offset", msg.Offset, "err", err)
		return nil
	}
	return s.Apply(ctx, event)
}

// Apply 按事件更新索引；帖子已不存在时删除文档
func (s *PostsHandler) Apply(ctx context.Context, event *PostEvent) error {
	if event.Type == EventDelete {
		return s.postESRepo.DeletePost(ctx, event.PostID)
	}

	post, err := s.postDBRepo.GetPost(ctx, event.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return s.postESRepo.DeletePost(ctx, event.PostID)
	}
	return s.postESRepo.IndexPost(ctx, es.NewPostES(post), event.TS)
}
