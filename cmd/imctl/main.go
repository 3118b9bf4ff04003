package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/investmateai/imctl/internal/cli/commands"
	"github.com/investmateai/imctl/internal/cli/ui"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Handle unknown command errors specially
		errMsg := err.Error()
		if strings.Contains(errMsg, "unknown command") {
			ui.PrintError("%s", errMsg)
			fmt.Println("\nRun 'imctl --help' for usage.")
		}
		os.Exit(1)
	}
}
