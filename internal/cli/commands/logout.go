package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/ui"
)

// logoutCmd is the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "clear the saved credential",
	Long: `Clear the locally saved credential.

Subsequent commands run anonymously until you log in again.`,
	Args: cobra.NoArgs,
	RunE: runLogout,
}

func init() {
	logoutCmd.SilenceUsage = true
}

func runLogout(cmd *cobra.Command, args []string) error {
	sess, err := restoreSession()
	if err != nil {
		ui.PrintError("failed to open session store: %v", err)
		return fmt.Errorf("session store failed")
	}

	if !sess.Authenticated() {
		ui.PrintInfo("Not logged in")
		return nil
	}

	if err := sess.Logout(); err != nil {
		ui.PrintError("failed to clear credential: %v", err)
		return fmt.Errorf("logout failed")
	}

	ui.PrintSuccess("Logged out")
	return nil
}
