package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/ui"
	"github.com/investmateai/imctl/pkg/logger"
)

const version = "0.1.0"

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "imctl",
	Short:   "InvestMateAI property search CLI",
	Version: version,
	Long: `A command-line client for the InvestMateAI real-estate backend.
Chat with the AI property-search assistant, manage listings as a registered
agent, and view chat analytics.`,
	Example: `  # Chat with the AI assistant (no login required)
  $ imctl chat

  # Authenticate as a registered agent
  $ imctl login

  # List property inventory
  $ imctl list properties

  # Get help on a specific command
  $ imctl chat --help`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if err := logger.Setup(cfg.Log); err != nil {
			ui.PrintWarning("logging disabled: %v", err)
		}
	},
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(insightsCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("imctl version %s\n", version)
}
