package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 同时作为 gin.Context 与 context.Context 的键
const TraceIDKey = "trace_id"

// WithTraceID 在 ctx 中写入 trace id
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// TraceID 取不到时返回空串
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

// traceHandler 把 ctx 里的 trace id 补进每条日志
type traceHandler struct {
	log.Handler
}

func (h traceHandler) Handle(ctx context.Context, r log.Record) error {
	if id := TraceID(ctx); id != "" {
		r.AddAttrs(log.String(TraceIDKey, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) log.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}
