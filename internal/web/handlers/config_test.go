package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veriface/veriface/internal/config"
)

func TestClientConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Camera.Width = 800
	cfg.Camera.Height = 600

	req := httptest.NewRequest("GET", "/api/v1/config", nil)
	recorder := httptest.NewRecorder()

	ClientConfig(cfg)(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var result struct {
		CameraWidth  int `json:"cameraWidth"`
		CameraHeight int `json:"cameraHeight"`
	}
	parseJSONResponse(t, recorder, &result)
	if result.CameraWidth != 800 || result.CameraHeight != 600 {
		t.Errorf("expected 800x600, got %dx%d", result.CameraWidth, result.CameraHeight)
	}
}
