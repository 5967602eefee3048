package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("unexpected default port %d", cfg.Server.Port)
	}
	if cfg.Backends.AnythingLLM.Port != "3001" {
		t.Errorf("unexpected RAG port %q", cfg.Backends.AnythingLLM.Port)
	}
	if cfg.Backends.AnythingLLM.APIKey != "" {
		t.Errorf("API key should default to empty, got %q", cfg.Backends.AnythingLLM.APIKey)
	}
	if cfg.Backends.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("unexpected daemon URL %q", cfg.Backends.Ollama.BaseURL)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  mode: debug
backends:
  anythingllm:
    api_key: secret-key
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("file value not applied, port=%d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "debug" {
		t.Errorf("file value not applied, mode=%q", cfg.Server.Mode)
	}
	if cfg.Backends.AnythingLLM.APIKey != "secret-key" {
		t.Errorf("file value not applied, api_key=%q", cfg.Backends.AnythingLLM.APIKey)
	}
	// Untouched keys keep their defaults
	if cfg.Backends.AnythingLLM.Port != "3001" {
		t.Errorf("default lost, RAG port=%q", cfg.Backends.AnythingLLM.Port)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080, Mode: "release"},
			Log:    LogConfig{Level: "info", Format: "text", Output: "stdout"},
			Backends: BackendsConfig{
				AnythingLLM: AnythingLLMConfig{Host: "http://localhost", Port: "3001"},
				Ollama:      OllamaConfig{BaseURL: "http://localhost:11434"},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"bad mode", func(c *Config) { c.Server.Mode = "test" }, "invalid server mode"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"missing RAG host", func(c *Config) { c.Backends.AnythingLLM.Host = "" }, "anythingllm.host"},
		{"missing daemon URL", func(c *Config) { c.Backends.Ollama.BaseURL = "" }, "ollama.base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
