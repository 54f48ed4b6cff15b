// Package feed builds the Atom digest of the reports written in a run.
package feed

import "time"

// Generator holds the feed-level metadata
type Generator struct {
	Title       string
	Description string
	Link        string
	Author      string

	// Now stamps the feed's updated time; time.Now when nil
	Now func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(title, description, link, author string) *Generator {
	return &Generator{
		Title:       title,
		Description: description,
		Link:        link,
		Author:      author,
	}
}

// Item is one digest entry
type Item struct {
	Title       string
	Link        string
	Description string
	Author      string
	Created     time.Time
	ID          string
	Categories  []string
}

// atomCategory is an Atom <category>; gorilla/feeds has no per-entry category list
type atomCategory struct {
	Term  string `xml:"term,attr"`
	Label string `xml:"label,attr,omitempty"`
}
