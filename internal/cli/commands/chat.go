package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/tui"
	"github.com/investmateai/imctl/internal/cli/ui"
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "chat with the AI property-search assistant",
	Long: `Start an interactive chat session with the AI property-search assistant.

No login is required; an authenticated session is used when present. The
chat surface becomes interactive once the agent roster has loaded. If the
backend does not respond within the bounded wait, a fallback screen offers a
retry and the Telegram channel.`,
	Example: `  # Start interactive chat
  $ imctl chat

  # Keyboard controls:
  • Enter sends the question
  • Tab cycles the agent filter
  • F1-F3 send a suggested question
  • Esc quits the session`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	// Anonymous sessions are fine for chat; the credential is attached when present
	sess, err := restoreSession()
	if err != nil {
		ui.PrintError("failed to open session store: %v", err)
		return fmt.Errorf("session store failed")
	}

	apiClient, err := newClient(cfg.Server, sess)
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintChatWelcomeBanner()

	program := tui.NewChatProgram(apiClient, cfg.TelegramURL)
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	return nil
}
