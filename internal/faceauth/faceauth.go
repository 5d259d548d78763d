package faceauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to a face recognition authentication service.
type Client struct {
	Url       string
	parsedURL *url.URL

	phoneKey    string
	uploadsPath string
	captureDir  string
}

// New creates a client for the face service at the given base URL.
func New(rawURL string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid service URL: %w", err)
	}
	return &Client{
		Url:         rawURL,
		parsedURL:   parsed,
		phoneKey:    "phone",
		uploadsPath: "uploads",
	}, nil
}

// SetPhoneKey overrides the JSON key used for the registration phone number.
// Some deployments of the service expect "phone_number" instead of "phone".
func (c *Client) SetPhoneKey(key string) {
	if key != "" {
		c.phoneKey = key
	}
}

// SetUploadsPath overrides the path under which the service serves profile photos.
func (c *Client) SetUploadsPath(path string) {
	if path != "" {
		c.uploadsPath = path
	}
}

// SetCaptureDir enables API response capturing to the specified directory.
// Pass an empty string to disable capturing.
func (c *Client) SetCaptureDir(dir string) error {
	if dir == "" {
		c.captureDir = ""
		return nil
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("could not create capture directory: %w", err)
	}
	c.captureDir = dir
	return nil
}

// resolveURL builds a full URL from the base service URL and the given path segments.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// captureResponse saves the API response body to a file if capturing is enabled.
func (c *Client) captureResponse(endpoint string, body []byte) {
	if c.captureDir == "" {
		return
	}

	filename := strings.ReplaceAll(endpoint, "/", "_")
	filename = strings.TrimPrefix(filename, "_")
	timestamp := time.Now().Format("20060102_150405")
	filename = fmt.Sprintf("%s_%s.json", filename, timestamp)

	filepath := filepath.Join(c.captureDir, filename)

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, body, "", "  "); err == nil {
		body = prettyJSON.Bytes()
	}

	// WriteFile error is non-critical for capturing - log and continue
	if err := os.WriteFile(filepath, body, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to capture response to %s: %v\n", filepath, err)
	}
}

// Login submits an email and a captured image for face verification.
// The image must be a self-describing data URL (data:image/png;base64,...).
func (c *Client) Login(ctx context.Context, email, image string) (*LoginResponse, error) {
	return doPostJSON[LoginResponse](c, ctx, "login", map[string]string{
		"email": email,
		"image": image,
	})
}

// Register enrolls a new identity with the service.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	body := map[string]string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"email":     req.Email,
		c.phoneKey:  req.Phone,
		"image":     req.Image,
	}
	return doPostJSON[RegisterResponse](c, ctx, "register", body)
}

// UploadsURL resolves a profile photo reference returned by the service
// against its uploads base path. Empty references resolve to an empty URL.
func (c *Client) UploadsURL(name string) string {
	if name == "" {
		return ""
	}
	return c.resolveURL(c.uploadsPath, name)
}
