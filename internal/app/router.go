package app

import (
	"teacher_portal_backend/docs"
	"teacher_portal_backend/internal/config"
	"teacher_portal_backend/internal/middleware"
	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)
	}

	registerProfileRoutes(authGroup.Group("", middleware.RoleMiddleware(model.Admin)), c)
}

func registerProfileRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/teachers", c.teacher.ListTeachers)
	rg.GET("/teachers/:id", c.teacher.GetProfile)
	rg.POST("/teachers/:id/photo", c.teacher.UploadPhoto)

	rg.POST("/teachers/:id/view-sessions", c.viewSessions.Open)
	rg.GET("/view-sessions/:sessionId", c.viewSessions.Get)
	rg.POST("/view-sessions/:sessionId/sections/:section/toggle", c.viewSessions.Toggle)
	rg.DELETE("/view-sessions/:sessionId", c.viewSessions.Close)
}
