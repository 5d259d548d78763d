package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veriface/veriface/internal/config"
)

var cameraCmd = &cobra.Command{
	Use:   "camera",
	Short: "Probe the capture device",
	Long: `Probe the local capture device: acquire the camera, grab a single
frame and report the delivered resolution. Useful for checking CAMERA_INPUT,
CAMERA_WIDTH and CAMERA_HEIGHT before running login or register.

Example:
  veriface camera --output probe.png`,
	RunE: runCamera,
}

func init() {
	rootCmd.AddCommand(cameraCmd)

	cameraCmd.Flags().String("output", "", "Write the captured frame to this PNG file")
}

func runCamera(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	output := mustGetString(cmd, "output")

	session := newCameraSession(cfg)
	defer session.Release()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Println("Acquiring camera...")
	if err := session.Acquire(ctx); err != nil {
		return err
	}

	frame, err := session.Freeze()
	if err != nil {
		return fmt.Errorf("failed to grab frame: %w", err)
	}

	fmt.Printf("Captured frame: %dx%d (%d bytes as data URL)\n",
		frame.Width, frame.Height, len(frame.DataURL))

	if output == "" {
		return nil
	}

	encoded, ok := strings.CutPrefix(frame.DataURL, "data:image/png;base64,")
	if !ok {
		return fmt.Errorf("unexpected frame encoding")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode frame: %w", err)
	}
	if err := os.WriteFile(output, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Frame written to %s\n", output)
	return nil
}
