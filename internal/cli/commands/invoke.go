package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm/registry"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/config"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
)

var invokeWorkspace string

// invokeCmd is the invoke command
var invokeCmd = &cobra.Command{
	Use:   "invoke [METHOD]",
	Short: "invoke any catalogued API operation",
	Long: `Invoke any operation from the method catalog without per-method
plumbing.

Without METHOD, an interactive picker lists every catalogued operation.
Each parameter is then prompted for according to its declared type, with
slug parameters pre-filled from the current workspace. The raw result is
printed verbatim as JSON.`,
	Example: `  # Pick an operation interactively
  $ ragctl invoke

  # Invoke a named operation
  $ ragctl invoke ListWorkspaces

  # Pre-fill slug parameters from a specific workspace
  $ ragctl invoke Chat -w finance-docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInvoke,
}

func init() {
	invokeCmd.Flags().StringVarP(&invokeWorkspace, "workspace", "w", "", "Workspace slug for pre-filling slug parameters")

	invokeCmd.SilenceUsage = true
}

func runInvoke(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	var method registry.Method
	if len(args) > 0 {
		m, ok := registry.Find(args[0])
		if !ok {
			ui.PrintError("unknown operation: %s", args[0])
			fmt.Println("\nRun 'ragctl invoke' without arguments to pick from the catalog.")
			return fmt.Errorf("invalid arguments")
		}
		method = m
	} else {
		m, err := pickMethod()
		if err != nil {
			ui.PrintError("failed to read selection: %v", err)
			return fmt.Errorf("input failed")
		}
		method = m
	}

	currentSlug := cfg.CurrentWorkspace
	if invokeWorkspace != "" {
		currentSlug = invokeWorkspace
	}

	values, err := promptParams(method, registry.Defaults(method, currentSlug))
	if err != nil {
		ui.PrintError("failed to read parameters: %v", err)
		return fmt.Errorf("input failed")
	}

	apiClient, err := anythingllm.New(cfg.ClientConfig())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Invoking %s...", method.Name)

	result, err := registry.Invoke(ctx, apiClient, method.Name, values)
	if err != nil {
		ui.PrintErrorBox("Invocation Failed", err.Error())
		return fmt.Errorf("invoke operation failed")
	}

	fmt.Println()
	ui.PrintJSON(result)

	return nil
}

// pickMethod runs the interactive catalog picker.
func pickMethod() (registry.Method, error) {
	methods := registry.All()
	options := make([]string, len(methods))
	for i, m := range methods {
		options[i] = fmt.Sprintf("%s: %s", m.Label, m.Description)
	}

	var idx int
	prompt := &survey.Select{
		Message:  "Operation:",
		Options:  options,
		PageSize: registry.Len(),
	}
	if err := survey.AskOne(prompt, &idx); err != nil {
		return registry.Method{}, err
	}

	return methods[idx], nil
}

// promptParams collects a value for each declared parameter, typed per the
// catalog entry. Defaults come pre-applied from the catalog and the current
// workspace.
func promptParams(m registry.Method, defaults map[string]string) (map[string]any, error) {
	values := make(map[string]any, len(m.Params))

	for _, p := range m.Params {
		message := fmt.Sprintf("%s:", p.Name)
		if p.Description != "" {
			message = fmt.Sprintf("%s (%s):", p.Name, p.Description)
		}

		switch p.Type {
		case registry.TypeBoolean:
			var v bool
			prompt := &survey.Confirm{Message: message, Default: defaults[p.Name] == "true"}
			if err := survey.AskOne(prompt, &v); err != nil {
				return nil, err
			}
			values[p.Name] = v

		case registry.TypeJSON:
			var v string
			prompt := &survey.Multiline{Message: message, Default: defaults[p.Name]}
			opts := []survey.AskOpt{}
			if p.Required {
				opts = append(opts, survey.WithValidator(survey.Required))
			}
			if err := survey.AskOne(prompt, &v, opts...); err != nil {
				return nil, err
			}
			values[p.Name] = v

		default:
			var v string
			prompt := &survey.Input{Message: message, Default: defaults[p.Name]}
			opts := []survey.AskOpt{}
			if p.Required {
				opts = append(opts, survey.WithValidator(survey.Required))
			}
			if err := survey.AskOne(prompt, &v, opts...); err != nil {
				return nil, err
			}
			if v == "" {
				continue
			}
			values[p.Name] = v
		}
	}

	return values, nil
}
