package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	store *backends.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store *backends.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Ping answers a basic reachability check.
func (h *HealthHandler) Ping(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{
		"status":  "ok",
		"message": "pong",
	})
}

// Liveness reports that the process is up.
func (h *HealthHandler) Liveness(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, utils.H{"status": "alive"})
}

// Readiness reports reachability of the two configured backends. The
// dashboard itself stays ready even when a backend is down; the per-backend
// state tells the UI what to render.
func (h *HealthHandler) Readiness(ctx context.Context, c *app.RequestContext) {
	ragStatus := "healthy"
	if status := h.store.RAG().ValidateConnection(ctx); !status.Authenticated {
		ragStatus = "unhealthy"
	}

	ollamaStatus := "healthy"
	if err := h.store.Ollama().Ping(ctx); err != nil {
		ollamaStatus = "unhealthy"
	}

	c.JSON(200, utils.H{
		"status":      "ready",
		"anythingllm": ragStatus,
		"ollama":      ollamaStatus,
	})
}
