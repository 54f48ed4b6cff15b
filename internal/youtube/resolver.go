package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	httputil "github.com/lepinkainen/video-digest/pkg/http"
	"golang.org/x/net/html/charset"
)

// channelIDPattern matches the channel ID embedded in the page's initial data blob
var channelIDPattern = regexp.MustCompile(`"channelId":"(UC[0-9A-Za-z_-]{22})"`)

// Resolver turns a public channel page URL into its channel ID
type Resolver struct {
	client *httputil.Client
}

// NewResolver creates a resolver using client. A nil client uses the default configuration.
func NewResolver(client *httputil.Client) *Resolver {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	return &Resolver{client: client}
}

// Resolve fetches pageURL once and returns the first channel ID found in the markup
func (r *Resolver) Resolve(ctx context.Context, pageURL string) (string, error) {
	slog.Debug("Resolving channel", "url", pageURL)

	resp, err := r.client.Get(ctx, pageURL)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	defer httputil.CloseBody(resp)

	if !httputil.IsSuccess(resp.StatusCode) {
		return "", &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := charset.NewReader(resp.Body, httputil.GetContentType(resp))
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: fmt.Errorf("decoding page: %w", err)}
	}

	markup, err := io.ReadAll(body)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: fmt.Errorf("reading page: %w", err)}
	}

	id, ok := ExtractChannelID(string(markup))
	if !ok {
		return "", &NotFoundError{URL: pageURL}
	}

	slog.Debug("Resolved channel", "url", pageURL, "channel_id", id)
	return id, nil
}

// ExtractChannelID returns the first channel ID in markup
func ExtractChannelID(markup string) (string, bool) {
	match := channelIDPattern.FindStringSubmatch(markup)
	if match == nil {
		return "", false
	}
	return match[1], true
}
