package logger

import (
	"Quill/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
)

// DefaultSlowThreshold 未配置时各存储客户端的慢操作阈值
const DefaultSlowThreshold = 200 * time.Millisecond

const logstashDialTimeout = 3 * time.Second

// InitLogger 初始化全局 slog，配置了 Logstash 地址时额外上报带 trace_id 的日志。
// 返回的 io.Closer 用于在退出时关闭远端连接，未连接远端时为 nil
func InitLogger(cfg config.LogConfig) io.Closer {
	handler, closer := NewHandler(os.Stdout, cfg)
	log.SetDefault(log.New(handler))
	return closer
}

// NewHandler 构造本地 JSON 输出，按需叠加 Logstash
func NewHandler(w io.Writer, cfg config.LogConfig) (log.Handler, io.Closer) {
	opts := &log.HandlerOptions{Level: ParseLevel(cfg.Level)}
	local := log.NewJSONHandler(w, opts)

	if cfg.Logstash.Address == "" {
		return traceHandler{local}, nil
	}

	conn, err := net.DialTimeout("tcp", cfg.Logstash.Address, logstashDialTimeout)
	if err != nil {
		log.New(local).Warn("Failed to connect to Logstash, logging to stdout only",
			"addr", cfg.Logstash.Address, "err", err)
		return traceHandler{local}, nil
	}

	remote := log.NewJSONHandler(conn, opts).WithAttrs([]log.Attr{
		log.String("target_index", cfg.Logstash.Index),
		log.String("log_token", cfg.Logstash.Token),
	})
	return traceHandler{fanout{local, tracedOnly{next: remote}}}, conn
}

// ParseLevel 无法识别时按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

func slowOr(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultSlowThreshold
	}
	return d
}
