package logger

import (
	"Quill/internal/api/config"
	"bytes"
	"context"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		out = append(out, record)
	}
	return out
}

// useDefault 临时替换全局 logger
func useDefault(t *testing.T, h log.Handler) {
	t.Helper()
	prev := log.Default()
	log.SetDefault(log.New(h))
	t.Cleanup(func() { log.SetDefault(prev) })
}

func TestTraceHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(traceHandler{log.NewJSONHandler(&buf, nil)})

	l.InfoContext(WithTraceID(context.Background(), "trace-1"), "hello")
	l.With("k", "v").InfoContext(WithTraceID(context.Background(), "trace-2"), "with attrs")

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "trace-1", records[0][TraceIDKey])
	assert.Equal(t, "trace-2", records[1][TraceIDKey])
	assert.Equal(t, "v", records[1]["k"])
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
	assert.Equal(t, "x", TraceID(WithTraceID(context.Background(), "x")))
}

func TestTracedOnlyDropsRecordsWithoutTrace(t *testing.T) {
	var local, remote bytes.Buffer
	l := log.New(traceHandler{fanout{
		log.NewJSONHandler(&local, nil),
		tracedOnly{next: log.NewJSONHandler(&remote, nil)},
	}})

	l.Info("no trace")
	assert.NotEmpty(t, local.String())
	assert.Empty(t, remote.String())

	l.InfoContext(WithTraceID(context.Background(), "t"), "with trace")
	assert.Contains(t, remote.String(), "with trace")
}

func TestFanoutEnabledIfAnyHandlerIs(t *testing.T) {
	var debug, info bytes.Buffer
	f := fanout{
		log.NewJSONHandler(&info, &log.HandlerOptions{Level: log.LevelInfo}),
		log.NewJSONHandler(&debug, &log.HandlerOptions{Level: log.LevelDebug}),
	}
	assert.True(t, f.Enabled(context.Background(), log.LevelDebug))

	log.New(f).Debug("only debug sink")
	assert.Empty(t, info.String())
	assert.Contains(t, debug.String(), "only debug sink")
}

func TestNewHandlerWithoutLogstash(t *testing.T) {
	var buf bytes.Buffer
	h, closer := NewHandler(&buf, config.LogConfig{Level: "warn"})
	assert.Nil(t, closer)

	l := log.New(h)
	l.Info("dropped")
	l.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewHandlerLogstashUnreachable(t *testing.T) {
	var buf bytes.Buffer
	h, closer := NewHandler(&buf, config.LogConfig{Logstash: config.LogstashConfig{Address: "127.0.0.1:1"}})
	assert.Nil(t, closer)
	assert.NotNil(t, h)
	assert.Contains(t, buf.String(), "Failed to connect to Logstash")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, log.LevelError, ParseLevel("error"))
	assert.Equal(t, log.LevelInfo, ParseLevel(""))
}

func TestTruncate(t *testing.T) {
	long := bytes.Repeat([]byte("a"), maxLoggedBody+10)
	assert.Len(t, truncate(string(long)), maxLoggedBody+len("...[truncated]"))
	assert.Equal(t, "short", truncate("short"))
}

func TestAccessLogLevels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	useDefault(t, traceHandler{log.NewJSONHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug})})

	r := gin.New()
	SetupGin(r)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/boom", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	records := decodeLines(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, "INFO", records[0]["level"])
	assert.Equal(t, "/ok", records[0]["route"])
	assert.Equal(t, "ERROR", records[1]["level"])
	assert.Equal(t, "WARN", records[2]["level"])
	assert.Nil(t, records[2]["route"])
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	useDefault(t, log.NewJSONHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug}))

	l := NewGormLogger(50 * time.Millisecond)
	sql := func() (string, int64) { return "select * from posts", 2 }

	l.Trace(context.Background(), time.Now(), sql, nil)
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	l.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sql, assert.AnError)

	records := decodeLines(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, "DEBUG", records[0]["level"])
	assert.Equal(t, "SELECT", records[0]["op"])
	assert.Equal(t, "WARN", records[1]["level"])
	assert.Equal(t, "DEBUG", records[2]["level"])
}

func TestESTransportKeepsBodies(t *testing.T) {
	var buf bytes.Buffer
	useDefault(t, log.NewJSONHandler(&buf, &log.HandlerOptions{Level: log.LevelDebug}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := new(bytes.Buffer)
		_, _ = raw.ReadFrom(r.Body)
		_, _ = w.Write(raw.Bytes())
	}))
	defer srv.Close()

	client := &http.Client{Transport: &ESTransport{}}
	resp, err := client.Post(srv.URL+"/quill_posts/_search", "application/json", strings.NewReader(`{"query":{}}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	echoed := new(bytes.Buffer)
	_, _ = echoed.ReadFrom(resp.Body)
	assert.Equal(t, `{"query":{}}`, echoed.String())
	assert.Contains(t, buf.String(), "req_body")
}

func TestRedisArgsMasksKeySuffix(t *testing.T) {
	assert.Equal(t, "[PROTECTED]", redisArgs(redisCmd("auth", "secret")))
	assert.Equal(t, "get auth:revoked:*", redisArgs(redisCmd("get", "auth:revoked:sig")))
}

func redisCmd(args ...any) redis.Cmder {
	return redis.NewCmd(context.Background(), args...)
}
