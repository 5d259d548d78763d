package faceauth

// RegisterRequest holds the identity attributes for a registration.
// The Image field must be a self-describing data URL.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Image     string
}

// LoginResponse is the service's answer to a login attempt. All profile
// fields are optional; the service may omit any of them.
type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
}

// RegisterResponse is the service's answer to a registration attempt.
// A successful registration does not log the user in.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
