package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
)

var deleteYes bool

// deleteCmd is the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete SLUG",
	Short: "delete a workspace",
	Long: `Delete a workspace and its vector index.

Deleting an unknown slug is an error, not a no-op; the failure is shown
as the server reported it.`,
	Example: `  # Delete with confirmation prompt
  $ ragctl delete finance-docs

  # Delete without prompting
  $ ragctl delete finance-docs -y`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation prompt")

	deleteCmd.SilenceUsage = true
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slug := args[0]

	if !deleteYes {
		var confirmed bool
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Delete workspace '%s' and its vector index?", slug),
			Default: false,
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			ui.PrintError("failed to read confirmation: %v", err)
			return fmt.Errorf("input failed")
		}
		if !confirmed {
			ui.PrintInfo("Aborted.")
			return nil
		}
	}

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

	ui.PrintInfo("Deleting workspace '%s'...", slug)

	if _, err := apiClient.DeleteWorkspace(ctx, slug); err != nil {
		ui.PrintErrorBox("Delete Failed", err.Error())
		return fmt.Errorf("delete operation failed")
	}

	ui.PrintSuccess("workspace '%s' deleted", slug)

	// Clear the selection if it pointed at the deleted workspace
	if cfg.CurrentWorkspace == slug {
		cfg.CurrentWorkspace = ""
		if err := cfg.Save(); err != nil {
			ui.PrintWarning("failed to clear current workspace: %v", err)
		}
	}

	return nil
}
