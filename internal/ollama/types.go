package ollama

// Model is one installed model reported by the daemon.
type Model struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

// GenerateResult is a completed non-streaming generation.
type GenerateResult struct {
	Text  string `json:"text"`
	Model string `json:"model"`
	Done  bool   `json:"done"`
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}
