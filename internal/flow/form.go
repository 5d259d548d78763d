package flow

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Form holds the user-entered identity attributes. Which fields are
// required depends on the flow kind.
type Form struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// normalize trims surrounding whitespace and applies NFC so visually
// identical input always produces the same wire payload.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Normalized returns a copy of the form with every field normalized.
func (f Form) Normalized() Form {
	return Form{
		FirstName: normalize(f.FirstName),
		LastName:  normalize(f.LastName),
		Email:     normalize(f.Email),
		Phone:     normalize(f.Phone),
	}
}

// ValidationError reports the first unmet submission requirement. It is
// always locally recoverable and never triggers a network call.
type ValidationError struct {
	Field   string // empty when the captured photo is missing
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// requiredField pairs a field label with its accessor, in display order.
type requiredField struct {
	label string
	value func(Form) string
}

var loginFields = []requiredField{
	{"email", func(f Form) string { return f.Email }},
}

var registrationFields = []requiredField{
	{"first name", func(f Form) string { return f.FirstName }},
	{"last name", func(f Form) string { return f.LastName }},
	{"email", func(f Form) string { return f.Email }},
	{"phone", func(f Form) string { return f.Phone }},
}

func (k Kind) requiredFields() []requiredField {
	if k == Registration {
		return registrationFields
	}
	return loginFields
}

// validate checks required-field non-emptiness (after trimming) for the
// flow kind, then frame presence. Returns the first violation found.
func (k Kind) validate(f Form, hasFrame bool) *ValidationError {
	f = f.Normalized()
	for _, field := range k.requiredFields() {
		if field.value(f) == "" {
			return &ValidationError{
				Field:   field.label,
				Message: "Please fill in the " + field.label + " field",
			}
		}
	}
	if !hasFrame {
		return &ValidationError{Message: "Please capture your photo first"}
	}
	return nil
}

// ValidatePayload validates a form together with an already-encoded image
// payload, for transports that receive the frame as a data URL string.
func (k Kind) ValidatePayload(f Form, image string) *ValidationError {
	return k.validate(f, strings.TrimSpace(image) != "")
}
