package job

import (
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/logger"
	"Quill/internal/pkg/redis"
	"Quill/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const searchReindexTimeout = 10 * time.Minute

type SearchReindexJob struct {
	postSvc service.PostService
}

func NewSearchReindexJob(postSvc service.PostService) *SearchReindexJob {
	return &SearchReindexJob{
		postSvc: postSvc,
	}
}

func (s *SearchReindexJob) Run() {
	traceID := "job-reindex-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), searchReindexTimeout)
	defer cancel()

	if redis.Rdb != nil {
		ok, err := redis.TryLock(ctx, consts.SearchReindexLockKey, traceID, searchReindexTimeout, 0)
		if err != nil {
			log.ErrorContext(ctx, "acquire reindex lock error", "err", err)
			return
		}
		if !ok {
			log.InfoContext(ctx, "search reindex running elsewhere, skipped")
			return
		}
		defer redis.UnLock(context.WithoutCancel(ctx), consts.SearchReindexLockKey, traceID)
	}

	start := time.Now()
	count, err := s.postSvc.ReindexPosts(ctx)
	if errors.Is(err, service.ErrFeatureDisabled) {
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "search reindex error", "err", err)
		return
	}

	log.InfoContext(ctx, "search reindex finished", "indexed_count", count, "latency", time.Since(start))
}
