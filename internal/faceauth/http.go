package faceauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// doPostJSON performs a POST request with a JSON body and unmarshals the JSON response.
//
// The face service answers rejections with non-200 statuses (400, 401, 404)
// that still carry a well-formed {success: false, message: ...} body, so the
// response is decoded regardless of status code. Only network errors and
// malformed bodies surface as errors; the caller inspects the success flag.
func doPostJSON[T any](c *Client, ctx context.Context, endpoint string, requestBody any) (*T, error) {
	url := c.resolveURL(endpoint)

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req) //nolint:gosec // URL constructed from validated parsedURL via resolveURL
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	c.captureResponse(endpoint, body)

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	return &result, nil
}
