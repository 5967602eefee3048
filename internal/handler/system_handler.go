package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
)

// SystemHandler proxies backend administration endpoints.
type SystemHandler struct {
	store *backends.Store
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(store *backends.Store) *SystemHandler {
	return &SystemHandler{store: store}
}

// ListUsers lists the backend's accounts. The backend enforces the admin
// requirement; a denial keeps its privilege-specific message.
func (h *SystemHandler) ListUsers(ctx context.Context, c *app.RequestContext) {
	users, err := h.store.RAG().ListUsers(ctx)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, users)
}

// ValidateConnection probes the RAG backend auth endpoint and returns the
// status as data, never as an error: an invalid key is a rendered state,
// not a failure of the dashboard.
func (h *SystemHandler) ValidateConnection(ctx context.Context, c *app.RequestContext) {
	SuccessResponse(c, h.store.RAG().ValidateConnection(ctx))
}
