package middleware

import (
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将管理员身份信息注入 Context
func AuthMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		claims, err := authSvc.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenInvalid) {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			} else {
				log.ErrorContext(c.Request.Context(), "authenticate failed", "err", err)
				response.Fail(c, response.InternalServerError, "未知错误")
			}
			c.Abort()
			return
		}

		c.Set(consts.ActorKey, claims.Username)
		c.Set(consts.RolesKey, claims.Roles)

		newCtx := context.WithValue(c.Request.Context(), consts.ActorKey, claims.Username)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// BearerToken 读取 Authorization: Bearer <token>
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
