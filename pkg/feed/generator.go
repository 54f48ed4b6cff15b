package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/feeds"
	"github.com/lepinkainen/video-digest/pkg/filesystem"
)

// Generate creates the base feed from items, keeping their order
func (g *Generator) Generate(items []Item) *feeds.Feed {
	now := g.now()
	feed := &feeds.Feed{
		Title:       g.Title,
		Link:        &feeds.Link{Href: g.Link},
		Description: g.Description,
		Author:      &feeds.Author{Name: g.Author},
		Created:     now,
		Updated:     now,
	}

	for _, item := range items {
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Description,
			Author:      &feeds.Author{Name: item.Author},
			Created:     item.Created,
			Updated:     item.Created,
			Id:          item.ID,
		})
	}

	return feed
}

// ValidateFeed checks the fields an Atom reader needs
func (g *Generator) ValidateFeed(feed *feeds.Feed) error {
	if feed == nil {
		return errors.New("feed is nil")
	}
	if feed.Title == "" {
		return errors.New("feed title is empty")
	}
	if feed.Link == nil || feed.Link.Href == "" {
		return errors.New("feed link is empty")
	}

	for i, item := range feed.Items {
		if err := validateFeedItem(item); err != nil {
			return fmt.Errorf("item %d validation failed: %w", i, err)
		}
	}
	return nil
}

func validateFeedItem(item *feeds.Item) error {
	if item.Title == "" {
		return errors.New("item title is empty")
	}
	if item.Link == nil || item.Link.Href == "" {
		return errors.New("item link is empty")
	}
	if item.Id == "" {
		return errors.New("item ID is empty")
	}
	return nil
}

// RenderAtom renders items as an Atom document with one <category> per item category
func (g *Generator) RenderAtom(items []Item) ([]byte, error) {
	feed := g.Generate(items)
	if err := g.ValidateFeed(feed); err != nil {
		return nil, err
	}

	atom := (&feeds.Atom{Feed: feed}).AtomFeed()
	out := &atomFeed{
		Xmlns:    "http://www.w3.org/2005/Atom",
		Title:    atom.Title,
		Id:       atom.Id,
		Updated:  atom.Updated,
		Link:     atom.Link,
		Author:   atom.Author,
		Subtitle: atom.Subtitle,
	}

	for i, entry := range atom.Entries {
		e := &atomEntry{
			Title:     entry.Title,
			Updated:   entry.Updated,
			Id:        entry.Id,
			Content:   entry.Content,
			Published: entry.Published,
			Links:     entry.Links,
			Summary:   entry.Summary,
			Author:    entry.Author,
		}
		for _, category := range items[i].Categories {
			e.Categories = append(e.Categories, atomCategory{Term: category, Label: category})
		}
		out.Entries = append(out.Entries, e)
	}

	data, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal atom feed: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

// SaveAtom renders items and writes them to path, replacing any previous digest
func (g *Generator) SaveAtom(items []Item, path string) error {
	data, err := g.RenderAtom(items)
	if err != nil {
		return err
	}

	if err := filesystem.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write atom feed: %w", err)
	}

	slog.Info("Digest feed saved", "path", path, "items", len(items))
	return nil
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

type atomEntry struct {
	XMLName    xml.Name           `xml:"entry"`
	Title      string             `xml:"title"`
	Updated    string             `xml:"updated"`
	Id         string             `xml:"id"`
	Categories []atomCategory     `xml:"category"`
	Content    *feeds.AtomContent `xml:"content,omitempty"`
	Published  string             `xml:"published,omitempty"`
	Links      []feeds.AtomLink   `xml:"link"`
	Summary    *feeds.AtomSummary `xml:"summary,omitempty"`
	Author     *feeds.AtomAuthor  `xml:"author,omitempty"`
}

type atomFeed struct {
	XMLName  xml.Name          `xml:"feed"`
	Xmlns    string            `xml:"xmlns,attr"`
	Title    string            `xml:"title"`
	Id       string            `xml:"id"`
	Updated  string            `xml:"updated"`
	Link     *feeds.AtomLink   `xml:"link,omitempty"`
	Author   *feeds.AtomAuthor `xml:"author,omitempty"`
	Subtitle string            `xml:"subtitle,omitempty"`
	Entries  []*atomEntry      `xml:"entry"`
}
