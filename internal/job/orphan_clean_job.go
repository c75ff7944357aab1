package job

import (
	"Quill/internal/pkg/logger"
	"Quill/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const orphanCleanTimeout = time.Minute

// OrphanCleanJob 清理帖子或分类已不存在的关联行
type OrphanCleanJob struct {
	postDBRepo repository.PostRepo
}

func NewOrphanCleanJob(postDBRepo repository.PostRepo) *OrphanCleanJob {
	return &OrphanCleanJob{
		postDBRepo: postDBRepo,
	}
}

func (s *OrphanCleanJob) Run() {
	traceID := "job-orphan-" + uuid.NewString()
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background(), traceID), orphanCleanTimeout)
	defer cancel()

	removed, err := s.postDBRepo.DeleteOrphanLinks(ctx)
	if err != nil {
		log.ErrorContext(ctx, "delete orphan post category links error", "err", err)
		return
	}

	if removed > 0 {
		log.InfoContext(ctx, "orphan link cleanup finished", "removed_count", removed)
	}
}
