// Package flow implements the capture-and-authenticate workflow shared by
// the login and registration journeys: camera acquisition, freeze, retake,
// form validation, submission, and outcome handling. One parameterized
// engine replaces what would otherwise be two near-identical flows.
package flow

import (
	"context"
	"fmt"

	"github.com/veriface/veriface/internal/camera"
	"github.com/veriface/veriface/internal/faceauth"
)

// Kind discriminates the two user journeys sharing the workflow.
type Kind int

const (
	Login Kind = iota
	Registration
)

func (k Kind) String() string {
	if k == Registration {
		return "registration"
	}
	return "login"
}

// failedMessage is the generic fallback shown when the service gives no
// reason or the request fails in transit.
func (k Kind) failedMessage() string {
	if k == Registration {
		return "Registration failed. Please try again."
	}
	return "Login failed. Please try again."
}

// SuccessMessage is the confirmation shown after the service accepts a
// submission.
func (k Kind) SuccessMessage() string {
	if k == Registration {
		return "Registration successful!"
	}
	return "Login successful!"
}

// State is the page-level workflow state observed by the presentation layer.
type State int

const (
	// Capturing: camera live (or acquisition failed), preview shown, no frame yet.
	Capturing State = iota
	// Captured: frame frozen, camera released, form editable.
	Captured
	// Submitting: request in flight, form and capture actions disabled.
	Submitting
	// Succeeded: terminal; for login the profile is available.
	Succeeded
)

func (s State) String() string {
	switch s {
	case Capturing:
		return "capturing"
	case Captured:
		return "captured"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	}
	return "unknown"
}

// Submitter is the outbound half of the remote face service.
// *faceauth.Client satisfies it; tests script it.
type Submitter interface {
	Login(ctx context.Context, email, image string) (*faceauth.LoginResponse, error)
	Register(ctx context.Context, req faceauth.RegisterRequest) (*faceauth.RegisterResponse, error)
}

// Engine drives one capture-and-submit session. It is driven by a single
// actor; re-entrant triggers are rejected by state gating, not locking.
// A failed submission returns to Captured with the frame and form intact;
// only success or an explicit retake discards the frame.
type Engine struct {
	kind    Kind
	session *camera.Session
	ctrl    Controller

	form    Form
	frame   *camera.Frame
	state   State
	message string
	profile *Profile
}

// NewEngine creates an engine in the Capturing state. Call Start to begin
// camera acquisition and Close on every exit path to release the device.
func NewEngine(kind Kind, session *camera.Session, client Submitter) *Engine {
	return &Engine{
		kind:    kind,
		session: session,
		ctrl:    NewController(kind, client),
		state:   Capturing,
	}
}

// Start acquires the camera. On failure the engine stays in Capturing with
// no live preview; the error message is retained for display and capture
// remains disabled until a successful Retake or restart.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.session.Acquire(ctx); err != nil {
		e.message = err.Error()
		return err
	}
	return nil
}

func (e *Engine) Kind() Kind           { return e.kind }
func (e *Engine) State() State         { return e.state }
func (e *Engine) Frame() *camera.Frame { return e.frame }
func (e *Engine) Profile() *Profile    { return e.profile }
func (e *Engine) SetForm(f Form)       { e.form = f }
func (e *Engine) Form() Form           { return e.form }

// Message returns the last user-facing message: an acquisition error, a
// validation hint, a failure reason, or the success confirmation.
func (e *Engine) Message() string { return e.message }

// CanCapture reports whether a freeze is currently possible.
func (e *Engine) CanCapture() bool {
	return e.state == Capturing && e.session.State() == camera.StateLive
}

// Capture freezes the current frame, releasing the camera. A new capture
// replaces any previous frame.
func (e *Engine) Capture() error {
	if e.state != Capturing {
		return fmt.Errorf("cannot capture while %s", e.state)
	}

	frame, err := e.session.Freeze()
	if err != nil {
		return err
	}

	e.frame = frame
	e.state = Captured
	return nil
}

// Retake discards the captured frame and re-acquires the camera. The old
// device handle is fully released before the new request starts.
func (e *Engine) Retake(ctx context.Context) error {
	if e.state != Captured {
		return fmt.Errorf("cannot retake while %s", e.state)
	}

	e.frame = nil
	e.state = Capturing
	if err := e.session.Reacquire(ctx); err != nil {
		// Remain in Capturing with no preview, like a failed initial acquisition.
		e.message = err.Error()
		return err
	}
	return nil
}

// Submit validates the form and frame, then performs exactly one request
// against the remote service. Validation failures never reach the network.
// A non-success outcome returns the engine to Captured with the reason
// retained; success is terminal.
func (e *Engine) Submit(ctx context.Context) (*Outcome, error) {
	if e.state == Submitting {
		return nil, fmt.Errorf("submission already in flight")
	}
	if e.state != Captured {
		return nil, fmt.Errorf("cannot submit while %s", e.state)
	}

	if verr := e.kind.validate(e.form, e.frame != nil); verr != nil {
		e.message = verr.Message
		return nil, verr
	}

	e.state = Submitting
	outcome := e.ctrl.Submit(ctx, e.form, e.frame.DataURL)

	if outcome.Kind == OutcomeSuccess {
		e.state = Succeeded
		e.profile = outcome.Profile
		e.frame = nil
		e.message = e.kind.SuccessMessage()
	} else {
		e.state = Captured
		e.message = outcome.Reason
	}

	return &outcome, nil
}

// Close releases the camera. Required on every exit path, including
// navigation away and error paths; safe to call multiple times.
func (e *Engine) Close() {
	e.session.Release()
}
