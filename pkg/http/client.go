package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ClientConfig represents HTTP client configuration
type ClientConfig struct {
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Transport replaces http.DefaultTransport when set, e.g. to inject credentials.
	Transport http.RoundTripper
}

// DefaultConfig returns default HTTP client configuration
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		UserAgent: "video-digest/1.0",
		Headers:   make(map[string]string),
	}
}

// Client is a thin single-attempt HTTP client that applies shared headers to every request
type Client struct {
	client *http.Client
	config *ClientConfig
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	return &Client{
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		config: config,
	}
}

// Get performs an HTTP GET request bound to ctx
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	return c.Do(req)
}

// Post performs an HTTP POST request bound to ctx
func (c *Client) Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.Do(req)
}

// Do sends req exactly once after applying the configured default headers.
// Headers already present on req win over the defaults.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	for key, value := range c.config.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Redacted(), err)
	}

	return resp, nil
}
