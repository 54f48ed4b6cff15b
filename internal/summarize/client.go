// Package summarize calls the external summarization workflow for a video URL.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	httputil "github.com/lepinkainen/video-digest/pkg/http"
	"golang.org/x/oauth2"
)

// maxErrorBody caps how much of an upstream error body is kept on SummarizationError
const maxErrorBody = 2048

// Config identifies the workflow to execute
type Config struct {
	APIKey     string
	WorkflowID string
	BaseURL    string // e.g. https://api.dify.ai/v1
}

// Result is the structured workflow output. Fields missing upstream are left empty.
type Result struct {
	Summary  string
	Keywords []string
}

// SummarizationError reports a failed workflow call. StatusCode is zero when no response was received.
type SummarizationError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SummarizationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("summarization failed: HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("summarization failed: %v", e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

type executeRequest struct {
	Inputs executeInputs `json:"inputs"`
}

type executeInputs struct {
	YouTubeURL string `json:"youtube_url"`
}

type executeResponse struct {
	Outputs map[string]any `json:"outputs"`
}

// Client executes the summarization workflow
type Client struct {
	config Config
	http   *httputil.Client
}

// NewClient creates a workflow client. The API key is attached as a bearer token to every request.
// httpConfig may be nil; its Transport, if any, becomes the base of the authenticating transport.
func NewClient(config Config, httpConfig *httputil.ClientConfig) *Client {
	hc := httputil.DefaultConfig()
	if httpConfig != nil {
		copied := *httpConfig
		hc = &copied
	}

	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.APIKey, TokenType: "Bearer"}),
		Base:   base,
	}

	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Client{config: config, http: httputil.NewClient(hc)}
}

// Endpoint returns the execute URL for the configured workflow
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/workflows/%s/execute", c.config.BaseURL, url.PathEscape(c.config.WorkflowID))
}

// Summarize runs the workflow once for videoURL
func (c *Client) Summarize(ctx context.Context, videoURL string) (Result, error) {
	payload, err := json.Marshal(executeRequest{Inputs: executeInputs{YouTubeURL: videoURL}})
	if err != nil {
		return Result{}, &SummarizationError{Err: fmt.Errorf("encoding request: %w", err)}
	}

	start := time.Now()
	resp, err := c.http.Post(ctx, c.Endpoint(), "application/json", bytes.NewReader(payload))
	if err != nil {
		return Result{}, &SummarizationError{Err: err}
	}

	body, err := httputil.ReadResponseBody(resp)
	if err != nil {
		return Result{}, &SummarizationError{Err: fmt.Errorf("reading response: %w", err)}
	}

	slog.Debug("Workflow call completed", "url", videoURL, "status", resp.StatusCode, "duration", time.Since(start))

	if !httputil.IsSuccess(resp.StatusCode) {
		return Result{}, &SummarizationError{StatusCode: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
	}

	var decoded executeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Result{}, &SummarizationError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	return resultFromOutputs(decoded.Outputs), nil
}

// resultFromOutputs reads the workflow outputs leniently. Keywords may arrive as a list or as a
// single comma separated string; non-string list items are dropped.
func resultFromOutputs(outputs map[string]any) Result {
	result := Result{Keywords: []string{}}

	if summary, ok := outputs["summary"].(string); ok {
		result.Summary = summary
	}

	switch keywords := outputs["keywords"].(type) {
	case []any:
		for _, k := range keywords {
			if s, ok := k.(string); ok {
				result.Keywords = append(result.Keywords, s)
			}
		}
	case string:
		for _, k := range strings.Split(keywords, ",") {
			if k = strings.TrimSpace(k); k != "" {
				result.Keywords = append(result.Keywords, k)
			}
		}
	}

	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
