package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Host != "http://localhost" || cfg.Port != "3001" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.APIKey != "" {
		t.Errorf("API key must default to empty, got %q", cfg.APIKey)
	}
	if cfg.IsConfigured() {
		t.Error("expected IsConfigured()=false without an API key")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := &Config{
		Host:             "http://rag.internal",
		Port:             "3001",
		APIKey:           "user-supplied-key",
		OllamaURL:        "http://localhost:11434",
		CurrentWorkspace: "finance-docs",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(home, ".ragctl") {
		t.Errorf("unexpected config dir: %s", path)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.APIKey != "user-supplied-key" {
		t.Errorf("API key lost in round trip: %+v", loaded)
	}
	if loaded.CurrentWorkspace != "finance-docs" {
		t.Errorf("current workspace lost in round trip: %+v", loaded)
	}
	if !loaded.IsConfigured() {
		t.Error("expected IsConfigured()=true with a stored key")
	}

	cc := loaded.ClientConfig()
	if cc.Host != "http://rag.internal" || cc.Port != "3001" || cc.APIKey != "user-supplied-key" {
		t.Errorf("unexpected client config: %+v", cc)
	}
}
