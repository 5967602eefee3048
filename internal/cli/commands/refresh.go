package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
)

// refreshCmd is the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh [SLUG]",
	Short: "refresh workspace embeddings",
	Long: `Trigger a server-side re-indexing job for a workspace.

The server's raw response is printed so the operator sees exactly what the
backend reported. If SLUG is omitted, the currently selected workspace is
used.`,
	Example: `  # Refresh a named workspace
  $ ragctl refresh finance-docs

  # Refresh the selected workspace
  $ ragctl refresh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefresh,
}

func init() {
	refreshCmd.SilenceUsage = true
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	slug := cfg.CurrentWorkspace
	if len(args) > 0 {
		slug = args[0]
	}
	if slug == "" {
		ui.PrintError("no workspace selected, pass a slug or run 'ragctl use'")
		return fmt.Errorf("invalid arguments")
	}

	apiClient, err := anythingllm.New(cfg.ClientConfig())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Refreshing embeddings for '%s'...", slug)

	result, err := apiClient.UpdateEmbeddings(ctx, slug)
	if err != nil {
		ui.PrintErrorBox("Refresh Failed", err.Error())
		return fmt.Errorf("refresh operation failed")
	}

	content := fmt.Sprintf(`Workspace:  %s
Response:   %s`, slug, result.ServerResponse)
	ui.PrintSuccessBox("✓ Refresh Triggered", content)

	return nil
}
