package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/veriface/veriface/internal/faceauth"
	"github.com/veriface/veriface/internal/flow"
	"github.com/veriface/veriface/internal/web/middleware"
)

// FlowsHandler fronts the remote face service for the browser capture page.
// The page owns the camera; this side runs the same validation and
// submission controller as the terminal flows and keeps the authenticated
// session.
type FlowsHandler struct {
	client   *faceauth.Client
	sessions *middleware.SessionManager
}

// NewFlowsHandler creates a new flows handler.
func NewFlowsHandler(client *faceauth.Client, sm *middleware.SessionManager) *FlowsHandler {
	return &FlowsHandler{
		client:   client,
		sessions: sm,
	}
}

// submitRequest is the capture page's submission payload. Image is a
// self-describing data URL produced by the page's canvas.
type submitRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Image     string `json:"image"`
}

func (r submitRequest) form() flow.Form {
	return flow.Form{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// authResult is the response for login, session and registration endpoints.
type authResult struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message,omitempty"`
	Profile  *flow.Profile `json:"profile,omitempty"`
	PhotoURL string        `json:"photoUrl,omitempty"`
}

// outcomeStatus maps a submission outcome onto an HTTP status for the page.
func outcomeStatus(kind flow.OutcomeKind) int {
	switch kind {
	case flow.OutcomeSuccess:
		return http.StatusOK
	case flow.OutcomeRejected:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// Login handles a capture page login submission.
func (h *FlowsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	ctrl := flow.NewController(flow.Login, h.client)

	if verr := ctrl.Validate(req.form(), req.Image); verr != nil {
		respondFailure(w, http.StatusBadRequest, verr.Message)
		return
	}

	outcome := ctrl.Submit(r.Context(), req.form(), req.Image)
	if outcome.Kind != flow.OutcomeSuccess {
		respondFailure(w, outcomeStatus(outcome.Kind), outcome.Reason)
		return
	}

	session, err := h.sessions.CreateSession(*outcome.Profile)
	if err != nil {
		respondFailure(w, http.StatusInternalServerError, "could not create session")
		return
	}
	h.sessions.SetSessionCookie(w, session)

	respondJSON(w, http.StatusOK, authResult{
		Success:  true,
		Message:  flow.Login.SuccessMessage(),
		Profile:  outcome.Profile,
		PhotoURL: h.client.UploadsURL(outcome.Profile.Photo),
	})
}

// Register handles a capture page registration submission.
func (h *FlowsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondFailure(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	ctrl := flow.NewController(flow.Registration, h.client)

	if verr := ctrl.Validate(req.form(), req.Image); verr != nil {
		respondFailure(w, http.StatusBadRequest, verr.Message)
		return
	}

	outcome := ctrl.Submit(r.Context(), req.form(), req.Image)
	if outcome.Kind != flow.OutcomeSuccess {
		respondFailure(w, outcomeStatus(outcome.Kind), outcome.Reason)
		return
	}

	// Registration does not log the user in; no session is created.
	respondJSON(w, http.StatusOK, authResult{
		Success: true,
		Message: flow.Registration.SuccessMessage(),
	})
}

// Session returns the profile of the current authenticated session.
func (h *FlowsHandler) Session(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetSessionFromRequest(r)
	if session == nil {
		respondFailure(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	respondJSON(w, http.StatusOK, authResult{
		Success:  true,
		Profile:  &session.Profile,
		PhotoURL: h.client.UploadsURL(session.Profile.Photo),
	})
}

// Logout drops the current session.
func (h *FlowsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := h.sessions.GetSessionFromRequest(r); session != nil {
		h.sessions.DeleteSession(session.ID)
	}
	h.sessions.ClearSessionCookie(w)

	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
