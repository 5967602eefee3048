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

// usersCmd is the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "list backend accounts",
	Long: `List the accounts known to the RAG server.

This endpoint requires an admin API key; with a non-admin key the server
denies the call and the denial is shown as-is.`,
	Example: `  # List users
  $ ragctl users`,
	RunE: runUsers,
}

func init() {
	usersCmd.SilenceUsage = true
}

func runUsers(cmd *cobra.Command, args []string) error {
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

	ui.PrintInfo("Fetching users from %s...", apiClient.BaseURL())

	users, err := apiClient.ListUsers(ctx)
	if err != nil {
		ui.PrintError("failed to list users: %v", err)
		return fmt.Errorf("list operation failed")
	}

	fmt.Println()
	fmt.Println(ui.RenderUserList(users))

	return nil
}
