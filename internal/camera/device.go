// Package camera manages the capture device lifecycle: acquisition, live
// preview frames, freezing a still image, and guaranteed release.
package camera

import (
	"context"
	"fmt"
)

// Device is a source of encoded still frames from a capture device.
// Implementations deliver the latest frame in JPEG, PNG or BMP encoding.
type Device interface {
	// Open starts the device. It blocks until the device delivers its first
	// frame (access granted) or fails (denied, absent, busy).
	Open(ctx context.Context) error
	// Frame returns a copy of the most recent frame at native resolution.
	Frame() ([]byte, error)
	// Close stops the device. Safe to call multiple times.
	Close() error
}

// StreamConfig holds the preferred capture parameters. The device treats
// width and height as ideals, not requirements - frames may arrive at
// whatever resolution the hardware actually delivers.
type StreamConfig struct {
	Input       string // device path or identifier, empty for platform default
	Width       int
	Height      int
	FacingFront bool // prefer a user-facing camera where the platform distinguishes
}

// AcquisitionError signals that the capture device could not be acquired.
// The message is surfaced verbatim to the user.
type AcquisitionError struct {
	Message string
	Err     error
}

func (e *AcquisitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}
