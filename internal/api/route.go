package api

import (
	"Quill/internal/api/config"
	"Quill/internal/api/dto"
	"Quill/internal/api/middleware"
	"Quill/internal/pkg/consts"
	"Quill/internal/pkg/logger"
	"Quill/internal/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, cfg *config.Config) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(cfg.Server.TrustedProxies)

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	logger.SetupGin(r)
	r.Use(middleware.RecoveryMiddleware())

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "接口不存在")
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.Success(c, dto.MsgDTO{Msg: "pong"})
		})

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/search", group.PostHandler.SearchPosts)
			postGroup.GET("/:id", group.PostHandler.GetPost)
		}

		categoryGroup := apiGroup.Group("/categories")
		{
			categoryGroup.GET("", group.CategoryHandler.ListCategories)
			categoryGroup.GET("/:id", group.CategoryHandler.GetCategory)
		}

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", group.AuthHandler.Login)
			authGroup.POST("/logout", group.AuthHandler.Logout)
		}

		// 未启用鉴权时后台接口直接开放
		adminGroup := apiGroup.Group("/admin")
		if group.AuthSvc != nil && group.AuthSvc.Enabled() {
			adminGroup.Use(middleware.AuthMiddleware(group.AuthSvc), middleware.CheckRoles(consts.RoleAdmin))
		}
		{
			adminGroup.POST("/posts", group.PostHandler.CreatePost)
			adminGroup.PUT("/posts/:id", group.PostHandler.UpdatePost)
			adminGroup.DELETE("/posts/:id", group.PostHandler.DeletePost)

			adminGroup.POST("/categories", group.CategoryHandler.CreateCategory)
			adminGroup.PUT("/categories/:id", group.CategoryHandler.UpdateCategory)
			adminGroup.DELETE("/categories/:id", group.CategoryHandler.DeleteCategory)

			adminGroup.POST("/media/cover", group.MediaHandler.UploadCover)
			adminGroup.GET("/activities", group.ActivityHandler.ListActivities)
		}
	}

	return r
}
