package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	httputil "github.com/lepinkainen/video-digest/pkg/http"
	"github.com/mmcdole/gofeed"
)

// FeedFetcher reads a channel's public video feed
type FeedFetcher struct {
	client  *httputil.Client
	parser  *gofeed.Parser
	baseURL string
}

// NewFeedFetcher creates a fetcher for feeds served under baseURL (e.g. https://www.youtube.com)
func NewFeedFetcher(client *httputil.Client, baseURL string) *FeedFetcher {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	return &FeedFetcher{
		client:  client,
		parser:  gofeed.NewParser(),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// FeedURL returns the feed address for channelID
func (f *FeedFetcher) FeedURL(channelID string) string {
	return fmt.Sprintf("%s/feeds/videos.xml?channel_id=%s", f.baseURL, url.QueryEscape(channelID))
}

// Fetch retrieves and parses the channel feed. It never fails outright: an unreachable or
// malformed feed yields an empty entry list with the cause recorded in FeedResult.Err.
func (f *FeedFetcher) Fetch(ctx context.Context, channelID string) FeedResult {
	feedURL := f.FeedURL(channelID)
	slog.Debug("Fetching feed", "url", feedURL)

	resp, err := f.client.Get(ctx, feedURL)
	if err != nil {
		return FeedResult{Err: &ParseError{URL: feedURL, Err: err}}
	}
	defer httputil.CloseBody(resp)

	if err := httputil.EnsureSuccess(resp); err != nil {
		return FeedResult{Err: &ParseError{URL: feedURL, Err: err}}
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return FeedResult{Err: &ParseError{URL: feedURL, Err: err}}
	}

	entries := make([]FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, FeedEntry{
			Title:     item.Title,
			URL:       item.Link,
			Published: item.Published,
		})
	}

	slog.Debug("Fetched feed", "url", feedURL, "count", len(entries))
	return FeedResult{Entries: entries}
}
