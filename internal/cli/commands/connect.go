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

var (
	connectPort   string
	connectAPIKey string
)

// connectCmd is the connect command
var connectCmd = &cobra.Command{
	Use:   "connect [host]",
	Short: "connect to a RAG server and save credentials",
	Long: `Connect to an AnythingLLM-compatible RAG server and save the connection
settings locally.

The API key is stored in ~/.ragctl/config.json and used automatically for
all subsequent commands. The connection is validated before saving, but a
failed validation does not block the save: you can fix the server later
and re-run status.

If host is not provided, defaults to http://localhost.`,
	Example: `  # Connect to default server (localhost:3001)
  $ ragctl connect

  # Connect to a custom host and port
  $ ragctl connect rag.lab.internal -p 3001

  # Connect with a key on the command line (will prompt otherwise)
  $ ragctl connect localhost -k MY-API-KEY`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConnect,
}

func init() {
	connectCmd.Flags().StringVarP(&connectPort, "port", "p", "", "Server port (default 3001)")
	connectCmd.Flags().StringVarP(&connectAPIKey, "api-key", "k", "", "API key (prompted if omitted)")

	// Silence usage to avoid showing help on every error
	connectCmd.SilenceUsage = true
}

func runConnect(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	if len(args) > 0 {
		cfg.Host = args[0]
	}
	if connectPort != "" {
		cfg.Port = connectPort
	}

	// Prompt for the port when neither flag nor saved value exists
	if cfg.Port == "" {
		prompt := &survey.Input{
			Message: "Server port:",
			Default: "3001",
		}
		if err := survey.AskOne(prompt, &cfg.Port, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read port: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	// Prompt for the API key (hidden input)
	apiKey := connectAPIKey
	if apiKey == "" {
		prompt := &survey.Password{
			Message: "API key (empty for unauthenticated servers):",
		}
		if err := survey.AskOne(prompt, &apiKey); err != nil {
			ui.PrintError("failed to read API key: %v", err)
			return fmt.Errorf("input failed")
		}
	}
	cfg.APIKey = apiKey

	apiClient, err := anythingllm.New(cfg.ClientConfig())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Connecting to %s...", apiClient.BaseURL())

	status := apiClient.ValidateConnection(ctx)

	if err := cfg.Save(); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	configPath, _ := config.GetConfigPath()

	if status.Authenticated {
		content := fmt.Sprintf(`Server:        %s
Config saved:  %s`, apiClient.BaseURL(), configPath)
		ui.PrintSuccessBox("✓ Connected", content)

		fmt.Println()
		ui.PrintInfo("You can now use the following commands:")
		ui.PrintBold("  ragctl list             # List workspaces")
		ui.PrintBold("  ragctl chat <slug>      # Chat inside a workspace")
		return nil
	}

	content := fmt.Sprintf(`Server:        %s
Problem:       %s
Config saved:  %s`, apiClient.BaseURL(), status.Error, configPath)
	ui.PrintErrorBox("Connection Not Verified", content)
	fmt.Println()
	ui.PrintInfo("Settings were saved anyway. Fix the server or key and run 'ragctl status'.")

	return nil
}
