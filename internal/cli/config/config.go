package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
)

// Config stores CLI configuration
type Config struct {
	Host             string `json:"host"`              // RAG backend host
	Port             string `json:"port"`              // RAG backend port
	APIKey           string `json:"api_key"`           // RAG backend API key
	OllamaURL        string `json:"ollama_url"`        // inference daemon base URL
	OllamaModel      string `json:"ollama_model"`      // default generate model
	CurrentWorkspace string `json:"current_workspace"` // slug used for pre-fill
}

// GetConfigPath returns the configuration file path (~/.ragctl/config.json)
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ragctl", "config.json"), nil
}

// Load loads configuration from file
func Load() (*Config, error) {
	configFile, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return defaults(), nil
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Host == "" {
		cfg.Host = defaults().Host
	}
	if cfg.Port == "" {
		cfg.Port = defaults().Port
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = defaults().OllamaURL
	}

	return &cfg, nil
}

// defaults points at local backends with no API key; the key is always
// user-supplied.
func defaults() *Config {
	return &Config{
		Host:      "http://localhost",
		Port:      "3001",
		OllamaURL: "http://localhost:11434",
	}
}

// Save saves configuration to file
func (c *Config) Save() error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file holds the API key, keep it private to the user.
	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured reports whether an API key has been stored.
func (c *Config) IsConfigured() bool {
	return c.APIKey != ""
}

// ClientConfig converts to the API client configuration.
func (c *Config) ClientConfig() anythingllm.Config {
	return anythingllm.Config{
		Host:   c.Host,
		Port:   c.Port,
		APIKey: c.APIKey,
	}
}
