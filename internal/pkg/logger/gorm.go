package logger

import (
	"context"
	"errors"
	log "log/slog"
	"strings"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// gormLogger 把 GORM 的日志接到 slog，SQL 默认只在 debug 级别输出
type gormLogger struct {
	level gormlogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(slow time.Duration) gormlogger.Interface {
	return &gormLogger{level: gormlogger.Warn, slow: slowOr(slow)}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		log.InfoContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		log.WarnContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		log.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	op, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	fields := []any{"op", strings.ToUpper(op), "sql", truncate(sql), "rows", rows, "latency", elapsed}

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.level >= gormlogger.Error:
		log.ErrorContext(ctx, "SQL failed", append(fields, "err", err)...)
	case elapsed > l.slow && l.level >= gormlogger.Warn:
		log.WarnContext(ctx, "SQL slow", fields...)
	default:
		log.DebugContext(ctx, "SQL", fields...)
	}
}
