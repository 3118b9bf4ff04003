package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/ui"
)

// listCmd is the list command
var listCmd = &cobra.Command{
	Use:   "list [properties|agents]",
	Short: "list properties or agents",
	Long: `List property inventory or the agent roster.

Properties are grouped by city in a tree view with price, rooms, yield, and
the owning agent. When logged in, the property list is scoped to your own
listings; anonymous calls see the public view.`,
	Example: `  # List properties (default)
  $ imctl list
  $ imctl list properties

  # List the agent roster
  $ imctl list agents`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"properties", "agents"},
	RunE:      runList,
}

func init() {
	listCmd.SilenceUsage = true
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	what := "properties"
	if len(args) > 0 {
		what = args[0]
	}

	cfg := config.Load()

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

	switch what {
	case "agents":
		ui.PrintInfo("Fetching agent roster...")
		agents, err := apiClient.ListAgents(ctx)
		if err != nil {
			ui.PrintError("failed to list agents: %v", err)
			return fmt.Errorf("list operation failed")
		}

		fmt.Println()
		fmt.Println(ui.RenderAgentList(agents))
		return nil

	case "properties":
		ui.PrintInfo("Fetching properties...")
		properties, err := apiClient.ListProperties(ctx)
		if err != nil {
			ui.PrintError("failed to list properties: %v", err)
			return fmt.Errorf("list operation failed")
		}

		fmt.Println()
		fmt.Println(ui.RenderPropertyTree(properties))
		fmt.Println(ui.RenderPropertySummary(len(properties)))
		return nil

	default:
		ui.PrintError("unknown resource: %s", what)
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}
}
