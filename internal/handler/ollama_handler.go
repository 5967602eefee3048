package handler

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
)

// OllamaHandler proxies the minimal inference-daemon surface.
type OllamaHandler struct {
	store *backends.Store
}

// NewOllamaHandler creates a new Ollama handler.
func NewOllamaHandler(store *backends.Store) *OllamaHandler {
	return &OllamaHandler{store: store}
}

// Ping probes daemon reachability.
func (h *OllamaHandler) Ping(ctx context.Context, c *app.RequestContext) {
	if err := h.store.Ollama().Ping(ctx); err != nil {
		SuccessResponse(c, utils.H{"reachable": false, "error": err.Error()})
		return
	}
	SuccessResponse(c, utils.H{"reachable": true})
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// Generate runs a one-shot completion. An empty model falls back to the
// configured default.
func (h *OllamaHandler) Generate(ctx context.Context, c *app.RequestContext) {
	var req generateRequest
	if err := c.BindJSON(&req); err != nil {
		BadRequestResponse(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		BadRequestResponse(c, "prompt is required")
		return
	}
	model := req.Model
	if model == "" {
		model = h.store.Settings().OllamaModel
	}
	if model == "" {
		BadRequestResponse(c, "model is required (no default model configured)")
		return
	}

	result, err := h.store.Ollama().Generate(ctx, model, req.Prompt)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}

// Models lists the models installed on the daemon.
func (h *OllamaHandler) Models(ctx context.Context, c *app.RequestContext) {
	models, err := h.store.Ollama().ListModels(ctx)
	if err != nil {
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, models)
}
