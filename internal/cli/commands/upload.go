package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/investmateai/imctl/internal/cli/config"
	"github.com/investmateai/imctl/internal/cli/ui"
)

// uploadCmd is the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <property-id> <image-file>",
	Short: "upload an image for a property",
	Long: `Upload an image for one of your property listings.

Requires login; you can only attach images to your own properties.`,
	Example: `  # Upload an image
  $ imctl upload 7f3a21c4-09... apartment.jpg`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func init() {
	uploadCmd.SilenceUsage = true
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	propertyID, imagePath := args[0], args[1]

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

	content, err := os.ReadFile(imagePath)
	if err != nil {
		ui.PrintError("failed to read image file: %v", err)
		return fmt.Errorf("file read failed")
	}

	ui.PrintInfo("Uploading %s (%d bytes)...", filepath.Base(imagePath), len(content))

	ref, err := apiClient.UploadPropertyImage(ctx, propertyID, filepath.Base(imagePath), content)
	if err != nil {
		ui.PrintError("failed to upload image: %v", err)
		return fmt.Errorf("upload failed")
	}

	ui.PrintSuccess("Image uploaded")
	fmt.Printf("  URL: %s\n", ref.ImageURL)

	return nil
}
