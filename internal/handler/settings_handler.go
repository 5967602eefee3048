package handler

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
)

// SettingsHandler reads and updates the backend connection settings.
type SettingsHandler struct {
	store *backends.Store
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(store *backends.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

type settingsView struct {
	AnythingLLMHost string `json:"anythingllmHost"`
	AnythingLLMPort string `json:"anythingllmPort"`
	APIKeySet       bool   `json:"apiKeySet"`
	OllamaURL       string `json:"ollamaUrl"`
	OllamaModel     string `json:"ollamaModel"`
}

type settingsUpdate struct {
	AnythingLLMHost string  `json:"anythingllmHost"`
	AnythingLLMPort string  `json:"anythingllmPort"`
	APIKey          *string `json:"apiKey"`
	OllamaURL       string  `json:"ollamaUrl"`
	OllamaModel     string  `json:"ollamaModel"`
}

// Get returns the current settings. The API key itself never leaves the
// server; only whether one is set.
func (h *SettingsHandler) Get(ctx context.Context, c *app.RequestContext) {
	s := h.store.Settings()
	SuccessResponse(c, settingsView{
		AnythingLLMHost: s.AnythingLLM.Host,
		AnythingLLMPort: s.AnythingLLM.Port,
		APIKeySet:       s.AnythingLLM.APIKey != "",
		OllamaURL:       s.OllamaURL,
		OllamaModel:     s.OllamaModel,
	})
}

// Update replaces the backend settings and swaps in fresh clients. A nil
// apiKey keeps the stored key; an empty string clears it.
func (h *SettingsHandler) Update(ctx context.Context, c *app.RequestContext) {
	var req settingsUpdate
	if err := c.BindJSON(&req); err != nil {
		BadRequestResponse(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.AnythingLLMHost) == "" || req.AnythingLLMPort == "" {
		BadRequestResponse(c, "anythingllmHost and anythingllmPort are required")
		return
	}
	if req.OllamaURL == "" {
		BadRequestResponse(c, "ollamaUrl is required")
		return
	}

	current := h.store.Settings()
	apiKey := current.AnythingLLM.APIKey
	if req.APIKey != nil {
		apiKey = *req.APIKey
	}

	settings := backends.Settings{
		OllamaURL:   req.OllamaURL,
		OllamaModel: req.OllamaModel,
	}
	settings.AnythingLLM.Host = req.AnythingLLMHost
	settings.AnythingLLM.Port = req.AnythingLLMPort
	settings.AnythingLLM.APIKey = apiKey

	if err := h.store.Update(settings); err != nil {
		BadRequestResponse(c, err.Error())
		return
	}

	h.Get(ctx, c)
}
