package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veriface/veriface/internal/faceauth"
	"github.com/veriface/veriface/internal/flow"
)

// testSessionProfile returns a fully defaulted profile for session tests.
func testSessionProfile() flow.Profile {
	return flow.Profile{
		ID:        "unknown",
		FirstName: "Jo",
		Email:     "a@b.com",
		Phone:     "N/A",
	}
}

// setupMockFaceService creates a mock remote face service for handler tests.
func setupMockFaceService(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}

	return httptest.NewServer(mux)
}

// createFaceClient creates a face service client pointed at a mock server.
func createFaceClient(t *testing.T, server *httptest.Server) *faceauth.Client {
	t.Helper()
	client, err := faceauth.New(server.URL)
	if err != nil {
		t.Fatalf("failed to create face service client: %v", err)
	}
	return client
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertFailureMessage checks that the response is {success: false} with the expected message.
func assertFailureMessage(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	parseJSONResponse(t, recorder, &result)
	if result.Success {
		t.Error("expected success to be false")
	}
	if result.Message != expectedMessage {
		t.Errorf("expected message '%s', got '%s'", expectedMessage, result.Message)
	}
}
