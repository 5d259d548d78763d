package camera

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// accessDeniedMessage is shown when the device cannot be acquired.
const accessDeniedMessage = "Could not access the camera. Please ensure it's connected and permissions are granted."

// SessionState tracks the lifecycle of one camera acquisition.
type SessionState int

const (
	StateIdle SessionState = iota
	StateAcquiring
	StateLive
	StateReleased
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateLive:
		return "live"
	case StateReleased:
		return "released"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Frame is an immutable still image captured from a live session, encoded
// as a self-describing data URL. CapturedAt is diagnostic only.
type Frame struct {
	ID         uuid.UUID
	DataURL    string
	Width      int
	Height     int
	CapturedAt time.Time
}

// Session owns at most one active device handle at a time. It is driven by
// a single actor (a terminal loop or one request); state gating replaces
// locking, so it is not safe for concurrent use.
type Session struct {
	dev    Device
	state  SessionState
	maxDim int
}

// NewSession creates an idle session around a capture device.
func NewSession(dev Device) *Session {
	return &Session{dev: dev, state: StateIdle}
}

// SetMaxDim caps the longer side of captured frames. Zero keeps the
// device's native resolution, which is the default.
func (s *Session) SetMaxDim(d int) {
	s.maxDim = d
}

func (s *Session) State() SessionState {
	return s.state
}

// Acquire requests camera access and blocks until the device grants or
// denies it. A still-live handle from a previous acquisition is released
// first, so two device handles never coexist.
func (s *Session) Acquire(ctx context.Context) error {
	if s.state == StateLive {
		_ = s.dev.Close()
	}

	s.state = StateAcquiring
	if err := s.dev.Open(ctx); err != nil {
		s.state = StateFailed
		return &AcquisitionError{Message: accessDeniedMessage, Err: err}
	}

	s.state = StateLive
	return nil
}

// Freeze captures the current frame at its native resolution, encodes it,
// and releases the device synchronously. Only valid on a live session;
// calling it again after release is an error.
func (s *Session) Freeze() (*Frame, error) {
	if s.state != StateLive {
		return nil, fmt.Errorf("cannot capture: session is %s", s.state)
	}

	raw, err := s.dev.Frame()
	if err != nil {
		return nil, fmt.Errorf("could not read frame: %w", err)
	}

	dataURL, width, height, err := EncodeFrame(raw, s.maxDim)
	if err != nil {
		return nil, fmt.Errorf("could not encode frame: %w", err)
	}

	s.Release()

	return &Frame{
		ID:         uuid.New(),
		DataURL:    dataURL,
		Width:      width,
		Height:     height,
		CapturedAt: time.Now(),
	}, nil
}

// Release stops the device if it is still acquired. Safe to call multiple
// times and on every exit path.
func (s *Session) Release() {
	if s.state == StateLive || s.state == StateAcquiring {
		_ = s.dev.Close()
	}
	s.state = StateReleased
}

// Reacquire discards the current handle and acquires a fresh one. The old
// handle is fully released before the new request starts, never concurrent.
func (s *Session) Reacquire(ctx context.Context) error {
	s.Release()
	return s.Acquire(ctx)
}
