package middleware

import (
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 要求已通过 AuthMiddleware，且至少持有一个指定角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.RolesKey)
		if !slices.ContainsFunc(requiredRoles, func(r string) bool { return slices.Contains(roles, r) }) {
			c.Abort()
			response.Error(c, service.UnauthorizedError)
			return
		}
		c.Next()
	}
}
