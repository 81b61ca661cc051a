package panel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultRequestTimeout = 5 * time.Second
	maxBodyBytes          = 1 << 20

	pathIndex       = "/"
	pathToggleLED   = "/toggle-led"
	pathTemperature = "/temperature"
)

// StatusError reports a non-2xx answer from the device.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Path, e.Code, strings.TrimSpace(e.Body))
}

// Client talks to the device's HTTP endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the device at baseURL. A zero timeout means the default of 5s.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("panel base_url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("panel base_url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}, nil
}

// Page fetches the device's control page.
func (c *Client) Page(ctx context.Context) ([]byte, error) {
	body, code, err := c.get(ctx, pathIndex, nil)
	if err != nil {
		return nil, err
	}
	if !ok2xx(code) {
		return nil, &StatusError{Path: pathIndex, Code: code, Body: string(body)}
	}
	return body, nil
}

// ToggleLED sends GET /toggle-led?state=1|0 and returns the response text.
// The body is returned whatever the status; a non-2xx status also yields a *StatusError.
func (c *Client) ToggleLED(ctx context.Context, on bool) (string, error) {
	state := "0"
	if on {
		state = "1"
	}
	body, code, err := c.get(ctx, pathToggleLED, url.Values{"state": {state}})
	if err != nil {
		return "", err
	}
	if !ok2xx(code) {
		return string(body), &StatusError{Path: pathToggleLED, Code: code, Body: string(body)}
	}
	return string(body), nil
}

// Temperatures fetches and decodes GET /temperature.
func (c *Client) Temperatures(ctx context.Context) (Reading, error) {
	body, code, err := c.get(ctx, pathTemperature, nil)
	if err != nil {
		return Reading{}, err
	}
	if !ok2xx(code) {
		return Reading{}, &StatusError{Path: pathTemperature, Code: code, Body: string(body)}
	}
	r, err := ParseReading(body)
	if err != nil {
		return Reading{}, fmt.Errorf("decode %s: %w", pathTemperature, err)
	}
	return r, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, 0, fmt.Errorf("build url: %w", err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s: %w", endpoint, err)
	}
	return body, resp.StatusCode, nil
}

func ok2xx(code int) bool { return code >= 200 && code < 300 }
