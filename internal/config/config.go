package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var profilesYAML []byte

type Config struct {
	Service ServiceConfig
	Camera  CameraConfig
	Web     WebConfig
}

type ServiceConfig struct {
	URL     string // base URL of the face recognition service (e.g. http://localhost:9000)
	Profile string // deployment profile name, see profiles.yaml
}

type CameraConfig struct {
	Input  string // capture device (e.g. /dev/video0), empty for platform default
	Width  int    // preferred capture width (the device may deliver another size)
	Height int    // preferred capture height
	MaxDim int    // downscale captured frames above this dimension, 0 keeps native resolution
}

type WebConfig struct {
	Host          string
	Port          int
	SessionSecret string
}

// Profile describes a deployment variant of the face service wire format.
type Profile struct {
	PhoneKey    string `yaml:"phone_key"`
	UploadsPath string `yaml:"uploads_path"`
}

type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Service: ServiceConfig{
			URL:     os.Getenv("SERVICE_URL"),
			Profile: envString("SERVICE_PROFILE", "default"),
		},
		Camera: CameraConfig{
			Input:  os.Getenv("CAMERA_INPUT"),
			Width:  envInt("CAMERA_WIDTH", 640),
			Height: envInt("CAMERA_HEIGHT", 480),
			MaxDim: envInt("CAMERA_MAX_DIM", 0),
		},
		Web: WebConfig{
			Host:          envString("WEB_HOST", "0.0.0.0"),
			Port:          envInt("WEB_PORT", 8080),
			SessionSecret: os.Getenv("WEB_SESSION_SECRET"),
		},
	}
}

// ServiceProfile resolves the configured deployment profile. Unknown profile
// names fall back to the default profile so a typo cannot silently change
// the wire format.
func (c *Config) ServiceProfile() Profile {
	var file profilesFile
	if err := yaml.Unmarshal(profilesYAML, &file); err != nil {
		// Embedded file, cannot happen in a correct build.
		panic("failed to unmarshal embedded profiles.yaml: " + err.Error())
	}

	if p, ok := file.Profiles[c.Service.Profile]; ok {
		return p
	}
	return file.Profiles["default"]
}
