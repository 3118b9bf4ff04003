package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/ui"
)

// insightsCmd is the insights command
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "view chat analytics for your listings",
	Long: `View aggregated chat analytics for your agent account.

Requires login. Shows the most asked questions, peak chat hours, the
properties buyers ask about most, and strategy recommendations.`,
	Example: `  # View your dashboard insights
  $ imctl insights`,
	Args: cobra.NoArgs,
	RunE: runInsights,
}

func init() {
	insightsCmd.SilenceUsage = true
}

func runInsights(cmd *cobra.Command, args []string) error {
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

	ui.PrintInfo("Fetching insights...")

	insights, err := apiClient.GetChatInsights(ctx)
	if err != nil {
		ui.PrintError("failed to fetch insights: %v", err)
		return fmt.Errorf("insights fetch failed")
	}

	fmt.Println()
	fmt.Println(ui.RenderInsights(insights))

	return nil
}
