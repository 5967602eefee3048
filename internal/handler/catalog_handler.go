package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm/registry"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/backends"
)

// CatalogHandler serves the method registry and performs generic invocation
// for the browser's argument-entry form.
type CatalogHandler struct {
	store *backends.Store
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(store *backends.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

type methodView struct {
	registry.Method
	Defaults map[string]string `json:"defaults"`
}

// List enumerates the catalog in display order. When the UI passes the
// currently selected workspace slug, identifier-slug parameters come back
// pre-filled with it.
func (h *CatalogHandler) List(ctx context.Context, c *app.RequestContext) {
	currentSlug := c.Query("current_slug")

	methods := registry.All()
	views := make([]methodView, 0, len(methods))
	for _, m := range methods {
		views = append(views, methodView{
			Method:   m,
			Defaults: registry.Defaults(m, currentSlug),
		})
	}
	SuccessResponse(c, views)
}

type invokeRequest struct {
	Args        map[string]any `json:"args"`
	CurrentSlug string         `json:"current_slug"`
}

// Invoke runs one catalog operation with named arguments and returns the
// raw result for verbatim rendering. Arguments the caller left out are
// filled from the catalog defaults, with slug parameters taking the
// caller's current workspace.
func (h *CatalogHandler) Invoke(ctx context.Context, c *app.RequestContext) {
	name := c.Param("name")

	var req invokeRequest
	if err := c.BindJSON(&req); err != nil {
		BadRequestResponse(c, "invalid request body: "+err.Error())
		return
	}

	args := req.Args
	if m, ok := registry.Find(name); ok {
		if args == nil {
			args = make(map[string]any)
		}
		for param, value := range registry.Defaults(m, req.CurrentSlug) {
			if _, set := args[param]; !set {
				args[param] = value
			}
		}
	}

	result, err := registry.Invoke(ctx, h.store.RAG(), name, args)
	if err != nil {
		if anythingllm.IsConfiguration(err) {
			ErrorResponse(c, err)
			return
		}
		// Binding problems (missing/invalid parameters) are caller errors.
		if !anythingllm.IsTransport(err) && !anythingllm.IsRequest(err) &&
			!anythingllm.IsAuthentication(err) && !anythingllm.IsNotFound(err) {
			BadRequestResponse(c, err.Error())
			return
		}
		ErrorResponse(c, err)
		return
	}
	SuccessResponse(c, result)
}
