package flow

import "testing"

func TestValidate_LoginRequiresEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
	}{
		{"empty email", ""},
		{"whitespace email", "   "},
		{"tab and newline", "\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Login.ValidatePayload(Form{Email: tt.email}, "data:image/png;base64,AAAA")
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if verr.Field != "email" {
				t.Errorf("expected field 'email', got '%s'", verr.Field)
			}
		})
	}
}

func TestValidate_LoginIgnoresRegistrationFields(t *testing.T) {
	// A login form only needs the email; name and phone stay optional.
	form := Form{Email: "a@b.com"}

	if verr := Login.ValidatePayload(form, "data:image/png;base64,AAAA"); verr != nil {
		t.Errorf("expected valid login form, got '%s'", verr.Message)
	}
}

func TestValidate_RegistrationAnyMissingField(t *testing.T) {
	complete := Form{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "a@b.com",
		Phone:     "12345",
	}

	tests := []struct {
		name  string
		strip func(Form) Form
		field string
	}{
		{"missing first name", func(f Form) Form { f.FirstName = ""; return f }, "first name"},
		{"missing last name", func(f Form) Form { f.LastName = " "; return f }, "last name"},
		{"missing email", func(f Form) Form { f.Email = ""; return f }, "email"},
		{"missing phone", func(f Form) Form { f.Phone = ""; return f }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Registration.ValidatePayload(tt.strip(complete), "data:image/png;base64,AAAA")
			if verr == nil {
				t.Fatal("expected validation error")
			}
			if verr.Field != tt.field {
				t.Errorf("expected field '%s', got '%s'", tt.field, verr.Field)
			}
		})
	}

	if verr := Registration.ValidatePayload(complete, "data:image/png;base64,AAAA"); verr != nil {
		t.Errorf("expected complete form to validate, got '%s'", verr.Message)
	}
}

func TestValidate_MissingFrame(t *testing.T) {
	form := Form{Email: "a@b.com"}

	verr := Login.ValidatePayload(form, "")
	if verr == nil {
		t.Fatal("expected validation error for missing frame")
	}

	if verr.Field != "" {
		t.Errorf("expected no field for frame violation, got '%s'", verr.Field)
	}

	if verr.Message != "Please capture your photo first" {
		t.Errorf("unexpected message '%s'", verr.Message)
	}
}

func TestValidate_FieldsCheckedBeforeFrame(t *testing.T) {
	verr := Login.ValidatePayload(Form{}, "")
	if verr == nil {
		t.Fatal("expected validation error")
	}

	if verr.Field != "email" {
		t.Errorf("expected the field violation to be reported first, got '%s'", verr.Message)
	}
}

func TestNormalized_TrimsFields(t *testing.T) {
	form := Form{
		FirstName: "  Jo ",
		LastName:  "\tDoe\n",
		Email:     " a@b.com ",
		Phone:     " 12345 ",
	}

	got := form.Normalized()

	if got.FirstName != "Jo" || got.LastName != "Doe" || got.Email != "a@b.com" || got.Phone != "12345" {
		t.Errorf("expected trimmed fields, got %+v", got)
	}
}
