package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/ollama"
)

var generateModel string

// generateCmd is the generate command
var generateCmd = &cobra.Command{
	Use:   "generate PROMPT...",
	Short: "run a one-shot completion on the inference daemon",
	Long: `Send a prompt straight to the local inference daemon, bypassing the RAG
server entirely. The whole completion is returned in one response.

The model comes from --model or the saved default.`,
	Example: `  # One-shot completion with the default model
  $ ragctl generate "Why is the sky blue?"

  # Pick a model
  $ ragctl generate -m llama3.2 "Why is the sky blue?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "Model name (defaults to the saved model)")

	generateCmd.SilenceUsage = true
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	model := generateModel
	if model == "" {
		model = cfg.OllamaModel
	}
	if model == "" {
		ui.PrintError("no model configured, pass -m or set ollama_model in the config")
		return fmt.Errorf("invalid arguments")
	}

	daemon, err := ollama.New(cfg.OllamaURL)
	if err != nil {
		ui.PrintError("invalid daemon URL: %v", err)
		return fmt.Errorf("client creation failed")
	}

	prompt := strings.Join(args, " ")

	ui.PrintInfo("Generating with %s...", model)

	result, err := daemon.Generate(ctx, model, prompt)
	if err != nil {
		ui.PrintErrorBox("Generation Failed", err.Error())
		return fmt.Errorf("generate operation failed")
	}

	fmt.Println()
	fmt.Println(result.Text)

	return nil
}
