package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/loader"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
)

var createFile string

// createCmd is the create command
var createCmd = &cobra.Command{
	Use:   "create [NAME]",
	Short: "create a workspace",
	Long: `Create a workspace on the RAG server.

The display name comes from the positional argument or from a YAML
definition file (-f). The server assigns the workspace id and slug; the
assigned slug is printed on success.`,
	Example: `  # Create by name
  $ ragctl create "Q1 Finance"

  # Create from a YAML definition
  $ ragctl create -f workspace.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "YAML workspace definition file")

	createCmd.SilenceUsage = true
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var name string
	switch {
	case createFile != "" && len(args) > 0:
		ui.PrintError("provide either a name or -f, not both")
		return fmt.Errorf("invalid arguments")
	case createFile != "":
		wf, err := loader.LoadFromFile(createFile)
		if err != nil {
			ui.PrintError("failed to load definition: %v", err)
			return fmt.Errorf("definition load failed")
		}
		name = wf.Spec.Name
	case len(args) > 0:
		name = args[0]
	default:
		ui.PrintError("a workspace name or -f FILE is required")
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
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

	ui.PrintInfo("Creating workspace '%s'...", name)

	ws, err := apiClient.CreateWorkspace(ctx, name)
	if err != nil {
		ui.PrintErrorBox("Create Failed", err.Error())
		return fmt.Errorf("create operation failed")
	}

	content := fmt.Sprintf(`Name:  %s
Slug:  %s`, ws.Name, ws.Slug)
	ui.PrintSuccessBox("✓ Workspace Created", content)

	fmt.Println()
	ui.PrintInfo("Select it with:")
	ui.PrintBold(fmt.Sprintf("  ragctl use %s", ws.Slug))

	return nil
}
