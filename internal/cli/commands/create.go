package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/loader"
	"github.com/investmateai/imctl/internal/cli/ui"
)

var (
	createFile string
)

// createCmd is the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "create a property listing from a YAML file",
	Long: `Create a property listing under your agent account.

Requires login. The property definition is loaded from a YAML file:

  kind: Property
  spec:
    address: 12 Herzl St
    city: Netanya
    price: 1850000
    rooms: 3.5
    floor: 4
    propertyType: apartment
    yieldPercent: 3.2
    rentalEstimate: 4900`,
	Example: `  # Create from YAML file
  $ imctl create -f property.yaml`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "YAML file containing the property definition")

	// Silence usage to avoid showing help on every error
	createCmd.SilenceUsage = true
}

func runCreate(cmd *cobra.Command, args []string) error {
	if createFile == "" {
		return cmd.Help()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := config.Load()

	sess, err := restoreSession()
	if err != nil {
		ui.PrintError("failed to open session store: %v", err)
		return fmt.Errorf("session store failed")
	}

	if !sess.Authenticated() {
		ui.PrintError("not authenticated, please login first")
		fmt.Println("\nRun 'imctl login' to authenticate.")
		return fmt.Errorf("authentication required")
	}

	apiClient, err := newClient(cfg.Server, sess)
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Loading property from file: %s", createFile)

	property, err := loader.LoadFromFile(createFile)
	if err != nil {
		ui.PrintError("failed to load file: %v", err)
		return fmt.Errorf("file load failed")
	}

	req, err := property.ToCreateRequest()
	if err != nil {
		ui.PrintError("invalid property specification: %v", err)
		return fmt.Errorf("validation failed")
	}

	// Display configuration
	ui.PrintInfo("Creating property:")
	fmt.Printf("  Address: %s\n", req.Address)
	fmt.Printf("  City: %s\n", req.City)
	fmt.Printf("  Price: %s\n", ui.FormatPrice(req.Price))
	fmt.Printf("  Rooms: %.1f, floor %d\n", req.Rooms, req.Floor)
	fmt.Printf("  Type: %s\n", req.PropertyType)
	if req.YieldPercent > 0 {
		fmt.Printf("  Yield: %.1f%%\n", req.YieldPercent)
	}
	if req.RentalEstimate > 0 {
		fmt.Printf("  Rental estimate: %s/mo\n", ui.FormatPrice(req.RentalEstimate))
	}
	fmt.Println()

	// Confirm creation
	confirm := false
	confirmPrompt := &survey.Confirm{
		Message: "Confirm creation?",
		Default: true,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}

	if !confirm {
		ui.PrintInfo("Cancelled")
		return nil
	}

	ui.PrintInfo("Creating...")
	created, err := apiClient.CreateProperty(ctx, req)
	if err != nil {
		ui.PrintError("Failed to create: %v", err)
		return fmt.Errorf("creation failed")
	}

	ui.PrintSuccess("Property '%s, %s' created successfully!", created.Address, created.City)
	fmt.Println()
	fmt.Printf("Upload an image: imctl upload %s <image-file>\n", created.ID)

	return nil
}
