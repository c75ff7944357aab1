package logger

import (
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupGin 挂载访问日志
func SetupGin(r *gin.Engine) {
	r.Use(AccessLog())
}

// AccessLog 每个请求一条 HTTP_ACCESS，5xx 记为 error，4xx 记为 warn
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		status := c.Writer.Status()
		level := log.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = log.LevelError
		case status >= http.StatusBadRequest:
			level = log.LevelWarn
		}

		attrs := []any{
			log.String("method", c.Request.Method),
			log.String("path", path),
			log.Int("status", status),
			log.Duration("latency", time.Since(start)),
			log.String("client_ip", c.ClientIP()),
		}
		if route := c.FullPath(); route != "" {
			attrs = append(attrs, log.String("route", route))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, log.String("errors", c.Errors.String()))
		}
		log.Log(c.Request.Context(), level, "HTTP_ACCESS", attrs...)
	}
}
