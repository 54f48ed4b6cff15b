// Package youtube resolves channel pages to channel IDs, reads channel feeds and picks today's uploads.
package youtube

import "fmt"

// FeedEntry is one video from a channel's public feed
type FeedEntry struct {
	Title     string
	URL       string // canonical video link
	Published string // raw timestamp as served by the feed
}

// FeedResult is the outcome of a feed fetch.
// Err records a fetch or parse problem that was swallowed; Entries is empty in that case.
// Callers that only look at Entries cannot tell "no uploads" from "feed broken".
type FeedResult struct {
	Entries []FeedEntry
	Err     error
}

// FetchError reports a failed channel page request
type FetchError struct {
	URL        string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching channel page %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching channel page %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFoundError means the channel page did not contain a channel ID
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("channel ID not found in %s", e.URL)
}

// ParseError describes why a feed produced no entries
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("reading feed %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedTimestampError is returned for an entry whose publication time cannot be parsed
type MalformedTimestampError struct {
	Title     string
	Published string
	Err       error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed publish time %q for %q: %v", e.Published, e.Title, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error { return e.Err }
