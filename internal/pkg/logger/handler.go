package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// fanout 把同一条记录写给所有下游，单个下游失败不影响其他
type fanout []log.Handler

func (f fanout) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []log.Attr) log.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) log.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}

// tracedOnly 只放行带 trace id 的记录，启动期等噪声不上报远端
type tracedOnly struct {
	next log.Handler
}

func (t tracedOnly) Enabled(ctx context.Context, level log.Level) bool {
	return t.next.Enabled(ctx, level)
}

func (t tracedOnly) Handle(ctx context.Context, r log.Record) error {
	traced := false
	r.Attrs(func(a log.Attr) bool {
		traced = a.Key == TraceIDKey && a.Value.String() != ""
		return !traced
	})
	if !traced {
		return nil
	}
	return t.next.Handle(ctx, r)
}

func (t tracedOnly) WithAttrs(attrs []log.Attr) log.Handler {
	return tracedOnly{next: t.next.WithAttrs(attrs)}
}

func (t tracedOnly) WithGroup(name string) log.Handler {
	return tracedOnly{next: t.next.WithGroup(name)}
}
