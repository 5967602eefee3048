package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/commands"
	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'ragctl --help' for usage.")
		}
		os.Exit(1)
	}
}
