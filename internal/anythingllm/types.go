package anythingllm

import "encoding/json"

// Chat modes accepted by the workspace chat endpoint.
const (
	ModeChat  = "chat"  // conversation-history aware
	ModeQuery = "query" // single-shot, context only
)

// Workspace represents a named, slug-identified document collection plus its
// vector index. The slug is the identity key; the numeric ID is a secondary
// server-assigned identifier.
type Workspace struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	VectorTag  string  `json:"vectorTag"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"lastUpdatedAt"`
	OpenAITemp float64 `json:"openAiTemp"`
}

// User is an account on the RAG backend, read-only from this client.
// Role is one of "default", "admin" or "manager".
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// ConnectionStatus is the result of ValidateConnection. It is a plain value,
// never an error: callers render Error verbatim when Authenticated is false.
type ConnectionStatus struct {
	Authenticated bool   `json:"authenticated"`
	Error         string `json:"error,omitempty"`
}

// Citation is one source record attached to a chat response. Known fields are
// decoded best-effort; Raw always holds the untouched JSON payload so callers
// can pass through whatever shape the server produced.
type Citation struct {
	Title string
	Chunk string
	Score float64
	Raw   json.RawMessage
}

// UnmarshalJSON keeps the raw payload alongside the decoded known fields.
func (c *Citation) UnmarshalJSON(data []byte) error {
	c.Raw = append(c.Raw[:0], data...)
	var known struct {
		Title string  `json:"title"`
		Chunk string  `json:"chunk"`
		Text  string  `json:"text"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		// Opaque payload; Raw is still populated.
		return nil
	}
	c.Title = known.Title
	c.Chunk = known.Chunk
	if c.Chunk == "" {
		c.Chunk = known.Text
	}
	c.Score = known.Score
	return nil
}

// MarshalJSON writes the original payload back out unmodified.
func (c Citation) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	return []byte("null"), nil
}

// ChatResult is the normalized workspace chat response.
type ChatResult struct {
	Text    string     `json:"text"`
	Sources []Citation `json:"sources"`
}

// RefreshResult is the outcome of a fire-and-forget embedding refresh. The
// server response is kept verbatim; the client never polls for completion.
type RefreshResult struct {
	Success        bool            `json:"success"`
	ServerResponse json.RawMessage `json:"serverResponse"`
}

// DeleteResult is the outcome of a workspace deletion.
type DeleteResult struct {
	Success bool `json:"success"`
}

// Wire shapes for request/response bodies.
type createWorkspaceRequest struct {
	Name string `json:"name"`
}

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type chatResponse struct {
	TextResponse string     `json:"textResponse"`
	Sources      []Citation `json:"sources"`
	Error        string     `json:"error"`
}

type workspacesResponse struct {
	Workspaces []Workspace `json:"workspaces"`
}

type workspaceResponse struct {
	Workspace *Workspace `json:"workspace"`
	Message   string     `json:"message"`
}

type usersResponse struct {
	Users []User `json:"users"`
}
