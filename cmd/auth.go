package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/veriface/veriface/internal/camera"
	"github.com/veriface/veriface/internal/config"
	"github.com/veriface/veriface/internal/faceauth"
	"github.com/veriface/veriface/internal/flow"
)

// newFaceClient builds the face service client from configuration,
// applying the deployment profile and the optional capture directory.
func newFaceClient(cfg *config.Config) (*faceauth.Client, error) {
	if cfg.Service.URL == "" {
		return nil, errors.New("SERVICE_URL environment variable is required")
	}

	client, err := faceauth.New(cfg.Service.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to create face service client: %w", err)
	}

	profile := cfg.ServiceProfile()
	client.SetPhoneKey(profile.PhoneKey)
	client.SetUploadsPath(profile.UploadsPath)

	if captureDir != "" {
		if err := client.SetCaptureDir(captureDir); err != nil {
			return nil, fmt.Errorf("failed to set capture directory: %w", err)
		}
	}
	return client, nil
}

// newCameraSession builds a camera session backed by the local capture device.
func newCameraSession(cfg *config.Config) *camera.Session {
	dev := camera.NewMJPEGDevice(camera.StreamConfig{
		Input:       cfg.Camera.Input,
		Width:       cfg.Camera.Width,
		Height:      cfg.Camera.Height,
		FacingFront: true,
	})
	session := camera.NewSession(dev)
	session.SetMaxDim(cfg.Camera.MaxDim)
	return session
}

// collectForm fills missing form fields by prompting on stdin. Fields
// already set via flags are kept as-is.
func collectForm(reader *bufio.Reader, form *flow.Form, kind flow.Kind) {
	if kind == flow.Registration {
		promptField(reader, "First name", &form.FirstName)
		promptField(reader, "Last name", &form.LastName)
	}
	promptField(reader, "Email", &form.Email)
	if kind == flow.Registration {
		promptField(reader, "Phone", &form.Phone)
	}
}

func promptField(reader *bufio.Reader, label string, value *string) {
	if strings.TrimSpace(*value) != "" {
		return
	}
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	*value = strings.TrimSpace(line)
}

// loadPhotoFile reads an image file from disk and encodes it in the
// submission format, applying the configured downscale limit.
func loadPhotoFile(path string, maxDim int) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read photo file: %w", err)
	}
	dataURL, width, height, err := camera.EncodeFrame(raw, maxDim)
	if err != nil {
		return "", fmt.Errorf("failed to encode photo file: %w", err)
	}
	fmt.Printf("Loaded %s (%dx%d)\n", path, width, height)
	return dataURL, nil
}

// withSpinner runs fn while showing an indeterminate progress spinner.
func withSpinner(description string, fn func()) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	fn()
	close(done)
	_ = bar.Finish()
	fmt.Println()
}

// printOutcome reports the submission result. A successful login also
// prints the returned profile.
func printOutcome(client *faceauth.Client, outcome flow.Outcome, message string) {
	fmt.Println(message)
	if outcome.Kind != flow.OutcomeSuccess || outcome.Profile == nil {
		return
	}

	p := outcome.Profile
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "ID:", p.ID)
	fmt.Printf("  %-12s %s %s\n", "Name:", p.FirstName, p.LastName)
	fmt.Printf("  %-12s %s\n", "Email:", p.Email)
	fmt.Printf("  %-12s %s\n", "Phone:", p.Phone)
	if p.Photo != "" {
		fmt.Printf("  %-12s %s\n", "Photo:", client.UploadsURL(p.Photo))
	}
}

// submitPhotoFile performs a single submission with a photo loaded from
// disk, bypassing the camera entirely.
func submitPhotoFile(ctx context.Context, cfg *config.Config, client *faceauth.Client, kind flow.Kind, form flow.Form, photoPath string) error {
	dataURL, err := loadPhotoFile(photoPath, cfg.Camera.MaxDim)
	if err != nil {
		return err
	}

	ctrl := flow.NewController(kind, client)
	if verr := ctrl.Validate(form, dataURL); verr != nil {
		return errors.New(verr.Message)
	}

	var outcome flow.Outcome
	withSpinner("Submitting", func() {
		outcome = ctrl.Submit(ctx, form, dataURL)
	})

	if outcome.Kind != flow.OutcomeSuccess {
		return errors.New(outcome.Reason)
	}
	printOutcome(client, outcome, kind.SuccessMessage())
	return nil
}

// runInteractiveFlow drives a full camera based authentication flow in the
// terminal: acquire the camera, capture, optionally retake, submit, and
// re-submit after a rejection if the user wants another attempt.
func runInteractiveFlow(ctx context.Context, cfg *config.Config, client *faceauth.Client, kind flow.Kind, form flow.Form) error {
	reader := bufio.NewReader(os.Stdin)
	collectForm(reader, &form, kind)

	engine := flow.NewEngine(kind, newCameraSession(cfg), client)
	defer engine.Close()

	fmt.Println("Starting camera...")
	if err := engine.Start(ctx); err != nil {
		return errors.New(engine.Message())
	}

	for {
		switch engine.State() {
		case flow.Capturing:
			fmt.Print("Camera ready. Press Enter to capture (q to quit): ")
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(line)) == "q" {
				return nil
			}
			if err := engine.Capture(); err != nil {
				return err
			}
			frame := engine.Frame()
			fmt.Printf("Captured %dx%d photo.\n", frame.Width, frame.Height)

		case flow.Captured:
			fmt.Print("[s]ubmit, [r]etake or [q]uit: ")
			line, _ := reader.ReadString('\n')
			switch strings.TrimSpace(strings.ToLower(line)) {
			case "q":
				return nil
			case "r":
				fmt.Println("Restarting camera...")
				if err := engine.Retake(ctx); err != nil {
					return errors.New(engine.Message())
				}
			default:
				engine.SetForm(form)
				var submitErr error
				withSpinner("Submitting", func() {
					_, submitErr = engine.Submit(ctx)
				})
				if submitErr != nil {
					return errors.New(engine.Message())
				}
				if engine.State() != flow.Succeeded {
					fmt.Println(engine.Message())
				}
			}

		case flow.Succeeded:
			printOutcome(client, flow.Outcome{Kind: flow.OutcomeSuccess, Profile: engine.Profile()}, engine.Message())
			return nil
		}
	}
}

// runAuthCommand is the shared entry point for the login and register
// commands.
func runAuthCommand(cmd *cobra.Command, kind flow.Kind, form flow.Form) error {
	cfg := config.Load()

	client, err := newFaceClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if photoPath := mustGetString(cmd, "photo"); photoPath != "" {
		return submitPhotoFile(ctx, cfg, client, kind, form, photoPath)
	}
	return runInteractiveFlow(ctx, cfg, client, kind, form)
}
