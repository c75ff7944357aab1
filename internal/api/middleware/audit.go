package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const maxAuditBody = 16384

// 这些字段在请求体和响应体中一律打码
var sensitiveFields = []string{"password", "token"}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if room := maxAuditBody - r.body.Len(); room > 0 {
		r.body.Write(b[:min(len(b), room)])
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 记录请求与响应体，密码与 token 打码，上传文件不记录
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var reqBody []byte
		if c.Request.Body != nil && !strings.HasPrefix(c.ContentType(), "multipart/") {
			reqBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxAuditBody))
			c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(reqBody), c.Request.Body))
		}

		query, err := url.QueryUnescape(c.Request.URL.RawQuery)
		if err != nil {
			query = c.Request.URL.RawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", query,
			"req_body", redact(reqBody),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		start := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"res_body", redact(w.body.Bytes()),
		)
	}
}

// redact 对 JSON 对象的敏感字段打码，非 JSON 对象原样返回
func redact(body []byte) string {
	if len(body) == 0 || body[0] != '{' {
		return string(body)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return string(body)
	}
	masked := false
	for k := range obj {
		for _, f := range sensitiveFields {
			if strings.EqualFold(k, f) {
				obj[k] = json.RawMessage(`"***"`)
				masked = true
			}
		}
	}
	if !masked {
		return string(body)
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return "[unloggable]"
	}
	return string(out)
}
