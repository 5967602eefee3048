package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/ollama"
)

// statusCmd is the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "check both backends",
	Long: `Check connectivity and authentication against the configured RAG server
and the local inference daemon.

The RAG check exercises the authenticated endpoint, so it verifies the API
key as well as reachability. The daemon check is a plain liveness probe.`,
	Example: `  # Check both backends
  $ ragctl status`,
	RunE: runStatus,
}

func init() {
	statusCmd.SilenceUsage = true
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	apiClient, err := anythingllm.New(cfg.ClientConfig())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Checking %s...", apiClient.BaseURL())

	status := apiClient.ValidateConnection(ctx)
	if status.Authenticated {
		ui.PrintSuccessBox("✓ RAG Server", fmt.Sprintf("Server:  %s\nAuth:    API key accepted", apiClient.BaseURL()))
	} else {
		ui.PrintErrorBox("RAG Server", fmt.Sprintf("Server:   %s\nProblem:  %s", apiClient.BaseURL(), status.Error))
	}

	daemon, err := ollama.New(cfg.OllamaURL)
	if err != nil {
		ui.PrintError("invalid daemon URL: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Checking %s...", cfg.OllamaURL)

	if err := daemon.Ping(ctx); err != nil {
		ui.PrintErrorBox("Inference Daemon", fmt.Sprintf("Daemon:   %s\nProblem:  %v", cfg.OllamaURL, err))
		return nil
	}

	content := fmt.Sprintf("Daemon:  %s", cfg.OllamaURL)
	if models, err := daemon.ListModels(ctx); err == nil {
		content = fmt.Sprintf("%s\nModels:  %d installed", content, len(models))
	}
	ui.PrintSuccessBox("✓ Inference Daemon", content)

	return nil
}
