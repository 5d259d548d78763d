package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/veriface/veriface/internal/flow"
)

func testProfile() flow.Profile {
	return flow.Profile{
		ID:        "abc123",
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "a@b.com",
		Phone:     "N/A",
	}
}

func TestSessionManager_CreateAndGet(t *testing.T) {
	sm := NewSessionManager("test-secret")

	session, err := sm.CreateSession(testProfile())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if session.ID == "" {
		t.Error("expected a session ID")
	}

	got := sm.GetSession(session.ID)
	if got == nil {
		t.Fatal("expected to retrieve the session")
	}

	if got.Profile.Email != "a@b.com" {
		t.Errorf("expected profile carried in session, got '%s'", got.Profile.Email)
	}
}

func TestSessionManager_GetUnknownSession(t *testing.T) {
	sm := NewSessionManager("test-secret")

	if sm.GetSession("nope") != nil {
		t.Error("expected nil for unknown session ID")
	}
}

func TestSessionManager_ExpiredSession(t *testing.T) {
	sm := NewSessionManager("test-secret")

	session, err := sm.CreateSession(testProfile())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	session.ExpiresAt = time.Now().Add(-time.Minute)

	if sm.GetSession(session.ID) != nil {
		t.Error("expected expired session to be rejected")
	}
}

func TestSessionManager_DeleteSession(t *testing.T) {
	sm := NewSessionManager("test-secret")

	session, err := sm.CreateSession(testProfile())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	sm.DeleteSession(session.ID)

	if sm.GetSession(session.ID) != nil {
		t.Error("expected deleted session to be gone")
	}
}

func TestSessionManager_CookieRoundTrip(t *testing.T) {
	sm := NewSessionManager("test-secret")

	session, err := sm.CreateSession(testProfile())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	recorder := httptest.NewRecorder()
	sm.SetSessionCookie(recorder, session)

	cookies := recorder.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	req := httptest.NewRequest("GET", "/api/v1/session", nil)
	req.AddCookie(cookies[0])

	got := sm.GetSessionFromRequest(req)
	if got == nil {
		t.Fatal("expected session from signed cookie")
	}

	if got.ID != session.ID {
		t.Errorf("expected session '%s', got '%s'", session.ID, got.ID)
	}
}

func TestSessionManager_TamperedCookieRejected(t *testing.T) {
	sm := NewSessionManager("test-secret")

	session, err := sm.CreateSession(testProfile())
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	recorder := httptest.NewRecorder()
	sm.SetSessionCookie(recorder, session)
	cookie := recorder.Result().Cookies()[0]

	// Swap the signed session ID for another valid-looking one.
	parts := strings.SplitN(cookie.Value, ".", 2)
	cookie.Value = "forged-session-id." + parts[1]

	req := httptest.NewRequest("GET", "/api/v1/session", nil)
	req.AddCookie(cookie)

	if sm.GetSessionFromRequest(req) != nil {
		t.Error("expected tampered cookie to be rejected")
	}
}

func TestSessionManager_NoCookie(t *testing.T) {
	sm := NewSessionManager("test-secret")

	req := httptest.NewRequest("GET", "/api/v1/session", nil)
	if sm.GetSessionFromRequest(req) != nil {
		t.Error("expected nil session without a cookie")
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the next handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/login", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", recorder.Code)
	}

	if recorder.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("expected localhost origin to be allowed")
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("expected no CORS allow header for unknown origin")
	}
}
