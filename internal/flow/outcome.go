package flow

import "github.com/veriface/veriface/internal/faceauth"

// OutcomeKind tags the result of one submission attempt.
type OutcomeKind int

const (
	// OutcomeSuccess: the service accepted the submission.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRejected: the service explicitly declined (no match, duplicate
	// registration, unknown email).
	OutcomeRejected
	// OutcomeTransportFailure: the request never produced a well-formed
	// response (network error, malformed body). Shown to the user like a
	// rejection but kept distinguishable internally.
	OutcomeTransportFailure
)

// Profile is the identity returned by a successful login. Every field is
// populated: the service may omit any of them, and missing values are
// replaced by explicit placeholders so the presentation layer never sees
// absent data.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
}

// Outcome is the tagged result of a submission. Profile is set only for a
// successful login; registration success carries no profile (registering
// does not log the user in).
type Outcome struct {
	Kind    OutcomeKind
	Reason  string
	Profile *Profile
}

// NewProfile applies the documented placeholder defaults to a successful
// login response.
func NewProfile(resp *faceauth.LoginResponse) Profile {
	p := Profile{
		ID:        resp.ID,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Email:     resp.Email,
		Phone:     resp.Phone,
		Photo:     resp.Photo,
	}
	if p.ID == "" {
		p.ID = "unknown"
	}
	if p.Phone == "" {
		p.Phone = "N/A"
	}
	return p
}
