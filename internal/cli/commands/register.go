package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/client"
	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/types"
	"github.com/investmateai/imctl/internal/cli/ui"
)

// registerCmd is the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "register as a real-estate agent",
	Long: `Register a new agent account with the InvestMateAI backend.

Registration is open; once registered, log in to manage listings and view
chat analytics.`,
	Example: `  # Interactive registration
  $ imctl register`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.SilenceUsage = true
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()

	questions := []*survey.Question{
		{
			Name:     "email",
			Prompt:   &survey.Input{Message: "Email:"},
			Validate: survey.Required,
		},
		{
			Name:     "password",
			Prompt:   &survey.Password{Message: "Password:"},
			Validate: survey.Required,
		},
		{
			Name:     "fullName",
			Prompt:   &survey.Input{Message: "Full name:"},
			Validate: survey.Required,
		},
		{
			Name:     "phoneNumber",
			Prompt:   &survey.Input{Message: "Phone number:"},
			Validate: survey.Required,
		},
		{
			Name:   "agencyName",
			Prompt: &survey.Input{Message: "Agency name (optional):"},
		},
		{
			Name:   "licenseNumber",
			Prompt: &survey.Input{Message: "License number (optional):"},
		},
	}

	answers := struct {
		Email         string
		Password      string
		FullName      string
		PhoneNumber   string
		AgencyName    string
		LicenseNumber string
	}{}

	if err := survey.Ask(questions, &answers); err != nil {
		ui.PrintError("failed to read registration details: %v", err)
		return fmt.Errorf("input failed")
	}

	apiClient, err := client.New(cfg.Server, nil)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Registering with %s...", cfg.Server)

	agent, err := apiClient.Register(ctx, &types.RegisterRequest{
		Email:         answers.Email,
		Password:      answers.Password,
		FullName:      answers.FullName,
		PhoneNumber:   answers.PhoneNumber,
		AgencyName:    answers.AgencyName,
		LicenseNumber: answers.LicenseNumber,
	})
	if err != nil {
		ui.PrintErrorBox("Registration Failed", err.Error())
		return fmt.Errorf("registration failed")
	}

	successContent := fmt.Sprintf(`Name:   %s
Email:  %s
ID:     %s`,
		agent.FullName,
		agent.Email,
		agent.ID,
	)
	ui.PrintSuccessBox("✓ Registration Successful", successContent)

	fmt.Println()
	ui.PrintInfo("Log in to start managing listings:")
	ui.PrintBold("%s", "  imctl login -e "+agent.Email)

	return nil
}
