package handlers

import (
	"net/http"

	"github.com/veriface/veriface/internal/config"
)

// clientConfig is the subset of configuration the capture page needs.
type clientConfig struct {
	CameraWidth  int `json:"cameraWidth"`
	CameraHeight int `json:"cameraHeight"`
}

// ClientConfig serves the capture page's camera preferences. The page
// treats them as ideals for getUserMedia, same as the terminal flows
// treat CAMERA_WIDTH and CAMERA_HEIGHT.
func ClientConfig(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, clientConfig{
			CameraWidth:  cfg.Camera.Width,
			CameraHeight: cfg.Camera.Height,
		})
	}
}
