package logger

import (
	"context"
	"errors"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisHook 记录连接失败、命令错误与慢命令
type redisHook struct {
	slow time.Duration
}

func NewRedisHook(slow time.Duration) redis.Hook {
	return redisHook{slow: slowOr(slow)}
}

func (h redisHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis dial failed",
				"addr", addr, "latency", time.Since(start), "err", err)
		}
		return conn, err
	}
}

func (h redisHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		h.report(ctx, cmd.Name(), redisArgs(cmd), 1, time.Since(start), err)
		return err
	}
}

func (h redisHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		h.report(ctx, "pipeline", "", len(cmds), time.Since(start), err)
		return err
	}
}

func (h redisHook) report(ctx context.Context, name, args string, count int, elapsed time.Duration, err error) {
	if ignorableRedisErr(name, err) {
		err = nil
	}
	fields := []any{"command", name, "cmd_count", count, "latency", elapsed}
	if args != "" {
		fields = append(fields, "args", args)
	}
	switch {
	case err != nil:
		log.ErrorContext(ctx, "Redis command failed", append(fields, "err", err)...)
	case elapsed > h.slow:
		log.WarnContext(ctx, "Redis command slow", fields...)
	}
}

// 鉴权类命令不记录参数，黑名单 key 里是 token 签名，也只保留前缀
func redisArgs(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return "[PROTECTED]"
	}
	parts := make([]string, 0, len(cmd.Args()))
	for _, a := range cmd.Args() {
		s, ok := a.(string)
		if !ok {
			continue
		}
		if i := strings.LastIndexByte(s, ':'); i >= 0 && i < len(s)-1 {
			s = s[:i+1] + "*"
		}
		parts = append(parts, s)
	}
	return truncate(strings.Join(parts, " "))
}

func ignorableRedisErr(name string, err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return true
	}
	// 旧版本服务端不支持 CLIENT SETINFO
	return name == "client" && strings.Contains(err.Error(), "setinfo")
}
