package flow

import (
	"context"

	"github.com/veriface/veriface/internal/faceauth"
)

// Controller builds and performs the outbound submission for one flow kind
// and maps the service's answer into an Outcome. It issues exactly one
// request per Submit call and never retries.
type Controller struct {
	kind   Kind
	client Submitter
}

func NewController(kind Kind, client Submitter) Controller {
	return Controller{kind: kind, client: client}
}

// Validate checks the form and image payload without touching the network.
func (c Controller) Validate(form Form, image string) *ValidationError {
	return c.kind.ValidatePayload(form, image)
}

// Submit sends the validated form and image payload to the service.
// Callers must run Validate first; Submit assumes the inputs are complete.
func (c Controller) Submit(ctx context.Context, form Form, image string) Outcome {
	form = form.Normalized()

	switch c.kind {
	case Registration:
		resp, err := c.client.Register(ctx, faceauth.RegisterRequest{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
			Phone:     form.Phone,
			Image:     image,
		})
		if err != nil {
			return Outcome{Kind: OutcomeTransportFailure, Reason: c.kind.failedMessage()}
		}
		if !resp.Success {
			return Outcome{Kind: OutcomeRejected, Reason: orFallback(resp.Message, c.kind.failedMessage())}
		}
		return Outcome{Kind: OutcomeSuccess}

	default: // Login
		resp, err := c.client.Login(ctx, form.Email, image)
		if err != nil {
			return Outcome{Kind: OutcomeTransportFailure, Reason: c.kind.failedMessage()}
		}
		if !resp.Success {
			return Outcome{Kind: OutcomeRejected, Reason: orFallback(resp.Message, c.kind.failedMessage())}
		}
		profile := NewProfile(resp)
		return Outcome{Kind: OutcomeSuccess, Profile: &profile}
	}
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
