package api

import (
	"Quill/internal/api/handler"
	"Quill/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostHandler     *handler.PostHandler
	CategoryHandler *handler.CategoryHandler
	AuthHandler     *handler.AuthHandler
	MediaHandler    *handler.MediaHandler
	ActivityHandler *handler.ActivityHandler

	// AuthSvc 启用鉴权时用于保护 /api/admin
	AuthSvc service.AuthService
}
