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

// useCmd is the use command
var useCmd = &cobra.Command{
	Use:   "use SLUG",
	Short: "select the current workspace",
	Long: `Select a workspace as the current one.

The selected slug is saved in the CLI config and pre-fills slug parameters
in 'ragctl invoke', 'ragctl refresh', and 'ragctl chat'. The slug is
verified against the server before it is saved.`,
	Example: `  # Select a workspace
  $ ragctl use finance-docs`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

func init() {
	useCmd.SilenceUsage = true
}

func runUse(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slug := args[0]

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

	ws, err := apiClient.GetWorkspace(ctx, slug)
	if err != nil {
		ui.PrintError("failed to verify workspace: %v", err)
		return fmt.Errorf("workspace lookup failed")
	}

	cfg.CurrentWorkspace = ws.Slug
	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	ui.PrintSuccess("current workspace is now '%s' (%s)", ws.Slug, ws.Name)

	return nil
}
