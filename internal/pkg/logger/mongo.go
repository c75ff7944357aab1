package logger

import (
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

// NewMongoMonitor 只记录失败与慢命令，命令体可能含帖子正文，不落日志
func NewMongoMonitor(slow time.Duration) *event.CommandMonitor {
	slow = slowOr(slow)
	return &event.CommandMonitor{
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			if evt.Duration > slow {
				log.WarnContext(ctx, "MongoDB command slow",
					"command", evt.CommandName,
					"database", evt.DatabaseName,
					"request_id", evt.RequestID,
					"latency", evt.Duration,
				)
			}
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB command failed",
				"command", evt.CommandName,
				"database", evt.DatabaseName,
				"request_id", evt.RequestID,
				"latency", evt.Duration,
				"err", evt.Failure,
			)
		},
	}
}
