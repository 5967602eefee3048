package handler

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
)

// WorkspaceHandler proxies workspace operations to the RAG backend.
type WorkspaceHandler struct {
	store *backends.Store
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(store *backends.Store) *WorkspaceHandler {
	return &WorkspaceHandler{store: store}
}

// List returns every workspace on the backend.
func (h *WorkspaceHandler) List(ctx context.Context, c *app.RequestContext) {
	workspaces, err := h.store.RAG().ListWorkspaces(ctx)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, workspaces)
}

// Get returns one workspace by slug.
func (h *WorkspaceHandler) Get(ctx context.Context, c *app.RequestContext) {
	slug := c.Param("slug")
	ws, err := h.store.RAG().GetWorkspace(ctx, slug)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, ws)
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

// Create makes a new workspace; the backend assigns id and slug.
func (h *WorkspaceHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req createWorkspaceRequest
	if err := c.BindJSON(&req); err != nil {
		BadRequestResponse(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		BadRequestResponse(c, "name is required")
		return
	}

	ws, err := h.store.RAG().CreateWorkspace(ctx, req.Name)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	CreatedResponse(c, ws)
}

// Delete removes a workspace. A slug the backend no longer knows is an
// error; the UI surfaces it rather than pretending the delete succeeded.
func (h *WorkspaceHandler) Delete(ctx context.Context, c *app.RequestContext) {
	slug := c.Param("slug")
	result, err := h.store.RAG().DeleteWorkspace(ctx, slug)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}

// Refresh triggers an embedding rebuild for the workspace.
func (h *WorkspaceHandler) Refresh(ctx context.Context, c *app.RequestContext) {
	slug := c.Param("slug")
	result, err := h.store.RAG().UpdateEmbeddings(ctx, slug)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

// Chat relays a message to the workspace. Mode passes through verbatim; the
// client defaults an empty mode to "chat".
func (h *WorkspaceHandler) Chat(ctx context.Context, c *app.RequestContext) {
	slug := c.Param("slug")

	var req chatRequest
	if err := c.BindJSON(&req); err != nil {
		BadRequestResponse(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		BadRequestResponse(c, "message is required")
		return
	}
	if req.Mode != "" && req.Mode != anythingllm.ModeChat && req.Mode != anythingllm.ModeQuery {
		BadRequestResponse(c, "mode must be \"chat\" or \"query\"")
		return
	}

	result, err := h.store.RAG().Chat(ctx, slug, req.Message, req.Mode)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}
