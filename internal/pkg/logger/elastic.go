package logger

import (
	"bytes"
	"context"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

// ESTransport 记录 Elasticsearch 请求，请求体与响应体只在 debug 级别读取
type ESTransport struct {
	Transport http.RoundTripper
	Slow      time.Duration
}

func (t *ESTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	debug := log.Default().Enabled(ctx, log.LevelDebug)

	var reqBody []byte
	if debug {
		reqBody = drain(&req.Body)
	}

	start := time.Now()
	resp, err := t.next().RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{"method", req.Method, "path", req.URL.Path, "latency", elapsed}
	if err != nil {
		log.ErrorContext(ctx, "ES request failed", append(fields, "err", err)...)
		return nil, err
	}
	fields = append(fields, "status", resp.StatusCode)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		log.ErrorContext(ctx, "ES request failed", fields...)
	case elapsed > slowOr(t.Slow):
		log.WarnContext(ctx, "ES request slow", fields...)
	case debug:
		logBodies(ctx, fields, reqBody, drain(&resp.Body))
	}
	return resp, nil
}

func (t *ESTransport) next() http.RoundTripper {
	if t.Transport == nil {
		return http.DefaultTransport
	}
	return t.Transport
}

func logBodies(ctx context.Context, fields []any, req, resp []byte) {
	log.DebugContext(ctx, "ES request",
		append(fields, "req_body", truncate(string(req)), "res_body", truncate(string(resp)))...)
}

// drain 读出 body 并放回可重复读取的副本
func drain(body *io.ReadCloser) []byte {
	if *body == nil || *body == http.NoBody {
		return nil
	}
	raw, _ := io.ReadAll(*body)
	_ = (*body).Close()
	*body = io.NopCloser(bytes.NewReader(raw))
	return raw
}

const maxLoggedBody = 1000

func truncate(s string) string {
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody] + "...[truncated]"
	}
	return s
}
