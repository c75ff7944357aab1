package middleware

import (
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware panic 时记录日志并按系统异常返回
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, rec any) {
		log.ErrorContext(c.Request.Context(), "Panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", rec,
		)
		c.Abort()
		response.Fail(c, response.InternalServerError, service.UnExpectedError.Error())
	})
}
