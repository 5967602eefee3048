// Package backends holds the dashboard's current backend clients. Clients
// are immutable once built; updating connection settings swaps in fresh
// instances atomically so in-flight calls keep the client they started with.
package backends

import (
	"sync"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/ollama"
)

// Settings is the user-editable backend connection configuration.
type Settings struct {
	AnythingLLM anythingllm.Config `json:"anythingllm"`
	OllamaURL   string             `json:"ollamaUrl"`
	OllamaModel string             `json:"ollamaModel"`
}

// Store is the swap point for backend clients.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	rag      *anythingllm.Client
	daemon   *ollama.Client
}

// NewStore builds the initial clients from settings.
func NewStore(settings Settings) (*Store, error) {
	s := &Store{}
	if err := s.Update(settings); err != nil {
		return nil, err
	}
	return s, nil
}

// Update builds new clients from settings and swaps them in. On any build
// error the previous clients stay active.
func (s *Store) Update(settings Settings) error {
	rag, err := anythingllm.New(settings.AnythingLLM)
	if err != nil {
		return err
	}
	daemon, err := ollama.New(settings.OllamaURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.rag = rag
	s.daemon = daemon
	return nil
}

// RAG returns the current AnythingLLM client.
func (s *Store) RAG() *anythingllm.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rag
}

// Ollama returns the current Ollama client.
func (s *Store) Ollama() *ollama.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.daemon
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}
