package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/client"
	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/session"
	"github.com/investmateai/imctl/internal/cli/ui"
)

var (
	loginEmail string
)

// loginCmd is the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "authenticate with the InvestMateAI backend",
	Long: `Authenticate as a registered agent and save the credential locally.

The bearer token is stored in ~/.imctl/credentials.json and attached
automatically to privileged commands until you log out or it expires.`,
	Example: `  # Login (will prompt for email and password)
  $ imctl login

  # Login with email (will prompt for password)
  $ imctl login -e agent@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Agent email for authentication")

	// Silence usage to avoid showing help on every error
	loginCmd.SilenceUsage = true
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()

	// 1. Prompt for email if not provided
	if loginEmail == "" {
		prompt := &survey.Input{
			Message: "Email:",
		}
		if err := survey.AskOne(prompt, &loginEmail, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read email: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	// 2. Prompt for password (hidden input)
	var password string
	prompt := &survey.Password{
		Message: "Password:",
	}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}

	// 3. Create an anonymous API client for the login exchange
	apiClient, err := client.New(cfg.Server, nil)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Connecting to %s...", cfg.Server)

	// 4. Call login API
	cred, err := apiClient.Login(ctx, loginEmail, password)
	if err != nil {
		ui.PrintErrorBox("Login Failed", err.Error())
		return fmt.Errorf("authentication failed")
	}

	// 5. Install the credential in the session store
	sess, err := restoreSession()
	if err != nil {
		ui.PrintError("failed to open session store: %v", err)
		return fmt.Errorf("session store failed")
	}
	if err := sess.Login(*cred); err != nil {
		ui.PrintError("failed to save credential: %v", err)
		return fmt.Errorf("credential save failed")
	}

	// 6. Display success message
	credPath, _ := session.DefaultPath()
	successContent := fmt.Sprintf(`Email:            %s
Token kind:       %s
Credential saved: %s`,
		loginEmail,
		cred.TokenType,
		credPath,
	)

	ui.PrintSuccessBox("✓ Login Successful", successContent)

	// 7. Display usage hints
	fmt.Println()
	ui.PrintInfo("You can now use the following commands:")
	ui.PrintBold("  imctl list properties   # List your property inventory")
	ui.PrintBold("  imctl insights          # View chat analytics")

	return nil
}
