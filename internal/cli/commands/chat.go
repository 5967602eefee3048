package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/tui"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [SLUG]",
	Short: "start interactive workspace chat",
	Long: `Start an interactive chat session inside a workspace.

Each message is one round trip to the RAG server; the reply arrives whole,
with its document citations listed underneath. Tab toggles between chat
mode (history-aware) and query mode (single-shot retrieval).

If SLUG is omitted, the currently selected workspace is used.`,
	Example: `  # Chat in a named workspace
  $ ragctl chat finance-docs

  # Chat in the selected workspace
  $ ragctl chat

  # Keyboard controls:
  • Enter sends the message
  • Tab toggles chat/query mode
  • Esc quits the session`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChatCmd,
}

func init() {
	chatCmd.SilenceUsage = true
}

func runChatCmd(cmd *cobra.Command, args []string) error {
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

	// Fail fast on a bad slug before entering the TUI
	ws, err := apiClient.GetWorkspace(ctx, slug)
	if err != nil {
		ui.PrintError("failed to open workspace: %v", err)
		return fmt.Errorf("workspace lookup failed")
	}

	ui.PrintChatWelcomeBanner(ws.Name)

	program := tui.NewChatProgram(apiClient, ws.Slug)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	return nil
}
