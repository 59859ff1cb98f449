// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/container"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/http/handlers"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/http/middleware"
	"github.com/AtRiskMedia/tractstack-hero/pkg/config"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware(config.AllowedOrigins))

	// Uploaded hero images and their renditions.
	r.Static(config.MediaURLPrefix, config.MediaDir)

	// Initialize handlers
	heroHandlers := handlers.NewHeroHandlers(container.HeroService, container.Logger, container.PerfTracker)
	authHandlers := handlers.NewAuthHandlers(container.AuthService, container.Logger, container.PerfTracker)
	previewHandlers := handlers.NewPreviewHandlers(container.PreviewHub, container.HeroService, config.AllowedOrigins, container.Logger)
	mediaHandlers := handlers.NewMediaHandlers(container.MediaService, container.Logger)
	systemHandlers := handlers.NewSystemHandlers(container.Database, container.Logger, container.PerfTracker)

	editorAuth := middleware.EditorAuthMiddleware(container.AuthService)

	// Published markup is public.
	r.GET("/blocks/:id", heroHandlers.GetPublished)

	api := r.Group("/api/v1")
	{
		api.GET("/health", systemHandlers.GetHealth)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandlers.PostLogin)
			auth.POST("/logout", authHandlers.PostLogout)
			auth.GET("/status", authHandlers.GetAuthStatus)
		}

		api.GET("/variants", heroHandlers.GetVariants)
		api.GET("/variants/:name/inspector", heroHandlers.GetInspector)
		api.POST("/render", heroHandlers.PostRender)

		blocks := api.Group("/blocks")
		blocks.Use(editorAuth)
		{
			blocks.POST("", heroHandlers.PostBlock)
			blocks.GET("", heroHandlers.GetBlocks)
			blocks.GET("/:id", heroHandlers.GetBlock)
			blocks.DELETE("/:id", heroHandlers.DeleteBlock)
			blocks.PATCH("/:id/attributes", heroHandlers.PatchAttributes)
			blocks.POST("/:id/media", heroHandlers.PostMedia)
			blocks.DELETE("/:id/media", heroHandlers.DeleteMedia)
			blocks.GET("/:id/editor", heroHandlers.GetEditor)
			blocks.GET("/:id/presentation", heroHandlers.GetPresentation)
			blocks.POST("/:id/publish", heroHandlers.PostPublish)
			blocks.GET("/:id/preview/ws", previewHandlers.GetPreviewSocket)
		}

		mediaAPI := api.Group("/media")
		mediaAPI.Use(editorAuth)
		{
			mediaAPI.GET("/:id", mediaHandlers.GetMedia)
			mediaAPI.DELETE("/:id", mediaHandlers.DeleteMedia)
		}

		system := api.Group("/system")
		system.Use(editorAuth)
		{
			system.GET("/stats", systemHandlers.GetStats)
			system.GET("/logs/levels", systemHandlers.GetLogLevels)
			system.POST("/logs/levels", systemHandlers.PostLogLevel)
		}
	}

	return r
}
