package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/handler"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/middleware"
)

// Setup sets up all routes
func Setup(
	h *server.Hertz,
	healthHandler *handler.HealthHandler,
	settingsHandler *handler.SettingsHandler,
	workspaceHandler *handler.WorkspaceHandler,
	systemHandler *handler.SystemHandler,
	ollamaHandler *handler.OllamaHandler,
	catalogHandler *handler.CatalogHandler,
) {
	// Global middleware
	h.Use(middleware.Recovery())
	h.Use(middleware.Logger())
	h.Use(middleware.CORS())

	// Health check routes
	h.GET("/ping", healthHandler.Ping)
	h.GET("/health/ready", healthHandler.Readiness)
	h.GET("/health/live", healthHandler.Liveness)

	// API v1 routes
	apiV1 := h.Group("/api/v1")
	{
		// Backend connection settings
		apiV1.GET("/settings", settingsHandler.Get)
		apiV1.PUT("/settings", settingsHandler.Update)

		// Backend probes
		apiV1.GET("/backends/anythingllm/auth", systemHandler.ValidateConnection)
		apiV1.GET("/backends/ollama/ping", ollamaHandler.Ping)

		// Workspaces (RAG backend)
		workspaces := apiV1.Group("/workspaces")
		{
			workspaces.GET("", workspaceHandler.List)
			workspaces.POST("", workspaceHandler.Create)
			workspaces.GET("/:slug", workspaceHandler.Get)
			workspaces.DELETE("/:slug", workspaceHandler.Delete)
			workspaces.POST("/:slug/refresh", workspaceHandler.Refresh)
			workspaces.POST("/:slug/chat", workspaceHandler.Chat)
		}

		// Backend accounts (admin key required on the backend side)
		apiV1.GET("/users", systemHandler.ListUsers)

		// Inference daemon
		apiV1.POST("/generate", ollamaHandler.Generate)
		apiV1.GET("/models", ollamaHandler.Models)

		// Method catalog and generic invocation
		apiV1.GET("/methods", catalogHandler.List)
		apiV1.POST("/methods/:name/invoke", catalogHandler.Invoke)
	}
}
