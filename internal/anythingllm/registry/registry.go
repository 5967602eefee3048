// Package registry is a static, machine-readable catalog of the client's
// operations. Each entry is self-describing enough that a generic caller (a
// browser form, a CLI prompt loop) can collect argument values and invoke
// the operation without per-method knowledge. The catalog is defined once
// and never mutated after process start.
package registry

// ParamType tags how a parameter value is collected and coerced.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	// TypeSlug marks a workspace identifier; generic callers pre-fill it
	// from the currently selected workspace when one is known.
	TypeSlug ParamType = "identifier-slug"
	// TypeJSON marks a free-form JSON value passed through unparsed.
	TypeJSON ParamType = "json"
)

// Param describes one parameter of a client operation.
type Param struct {
	Name        string    `json:"name"`
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Description string    `json:"description,omitempty"`
	Default     string    `json:"default,omitempty"`
}

// Method describes one invokable client operation. Name must match a client
// method registered in the dispatch table; Params order determines the
// positional argument order at invocation.
type Method struct {
	Name        string  `json:"name"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
}

// catalog is the fixed, ordered method list. Order is display order.
var catalog = []Method{
	{
		Name:        "ValidateConnection",
		Label:       "Validate Connection",
		Description: "Check that the server is reachable and the API key is accepted.",
	},
	{
		Name:        "ListWorkspaces",
		Label:       "List Workspaces",
		Description: "List every workspace on the server, in server order.",
	},
	{
		Name:        "GetWorkspace",
		Label:       "Get Workspace",
		Description: "Fetch a single workspace by its slug.",
		Params: []Param{
			{Name: "slug", Type: TypeSlug, Required: true, Description: "Workspace slug"},
		},
	},
	{
		Name:        "CreateWorkspace",
		Label:       "Create Workspace",
		Description: "Create a workspace; the server assigns its id and slug.",
		Params: []Param{
			{Name: "name", Type: TypeString, Required: true, Description: "Display name for the new workspace"},
		},
	},
	{
		Name:        "DeleteWorkspace",
		Label:       "Delete Workspace",
		Description: "Delete a workspace and its vector index. Fails if the slug is unknown.",
		Params: []Param{
			{Name: "slug", Type: TypeSlug, Required: true, Description: "Workspace slug"},
		},
	},
	{
		Name:        "UpdateEmbeddings",
		Label:       "Refresh Embeddings",
		Description: "Trigger a server-side re-indexing job for the workspace.",
		Params: []Param{
			{Name: "slug", Type: TypeSlug, Required: true, Description: "Workspace slug"},
		},
	},
	{
		Name:        "Chat",
		Label:       "Send Chat Message",
		Description: "Send a message to a workspace in chat or query mode.",
		Params: []Param{
			{Name: "slug", Type: TypeSlug, Required: true, Description: "Workspace slug"},
			{Name: "message", Type: TypeString, Required: true, Description: "Message to send"},
			{Name: "mode", Type: TypeString, Required: false, Default: "chat", Description: "chat (history-aware) or query (single-shot)"},
		},
	},
	{
		Name:        "ListUsers",
		Label:       "List Users",
		Description: "List backend accounts. Requires an admin API key.",
	},
}

// All returns the catalog in display order. The slice is a copy; the catalog
// itself is never exposed for mutation.
func All() []Method {
	out := make([]Method, len(catalog))
	copy(out, catalog)
	return out
}

// Len returns the number of catalog entries.
func Len() int {
	return len(catalog)
}

// At returns the catalog entry at index i.
func At(i int) (Method, bool) {
	if i < 0 || i >= len(catalog) {
		return Method{}, false
	}
	return catalog[i], true
}

// Find returns the catalog entry with the given operation name.
func Find(name string) (Method, bool) {
	for _, m := range catalog {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Defaults derives the pre-filled value for each parameter of m. A parameter
// of TypeSlug takes currentSlug when one is known; every other parameter
// falls back to its own declared default. Parameters with no default are
// omitted.
func Defaults(m Method, currentSlug string) map[string]string {
	out := make(map[string]string)
	for _, p := range m.Params {
		if p.Type == TypeSlug && currentSlug != "" {
			out[p.Name] = currentSlug
			continue
		}
		if p.Default != "" {
			out[p.Name] = p.Default
		}
	}
	return out
}
