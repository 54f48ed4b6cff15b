// Package preview shows today's videos in a terminal UI before anything is summarized.
package preview

import (
	"fmt"
	"strings"
	"time"
)

// Item is one video as shown in the preview
type Item struct {
	Channel    string
	Title      string
	URL        string
	Published  time.Time
	ReportName string // file a run would write for this video
}

const (
	maxTitleLength = 70
	ruleLine       = "═══════════════════════════════════════════════════════════════════════"
)

// FormatCompactListItem formats a single item in compact list format
// Example: " 1. 08:00Z [TeddyNote] Video Title"
func FormatCompactListItem(index int, item Item) string {
	title := item.Title
	if len([]rune(title)) > maxTitleLength {
		title = string([]rune(title)[:maxTitleLength-3]) + "..."
	}

	return fmt.Sprintf("%2d. %s [%s] %s", index+1, item.Published.UTC().Format("15:04Z"), item.Channel, title)
}

// FormatDetailedItem formats a single item with all metadata. now is used for the relative time.
func FormatDetailedItem(item Item, now time.Time) string {
	var b strings.Builder

	b.WriteString(ruleLine + "\n")
	fmt.Fprintf(&b, "Title: %s\n", wrapText(item.Title, 70))
	fmt.Fprintf(&b, "Channel: %s\n", item.Channel)
	fmt.Fprintf(&b, "Link: %s\n", item.URL)

	if !item.Published.IsZero() {
		fmt.Fprintf(&b, "Published: %s (%s)\n", item.Published.UTC().Format(time.RFC3339), formatTimeAgo(item.Published, now))
	}

	if item.ReportName != "" {
		fmt.Fprintf(&b, "Report: %s\n", item.ReportName)
	}

	b.WriteString(ruleLine + "\n")
	return b.String()
}

// wrapText wraps text to the specified width, breaking at word boundaries when possible
func wrapText(text string, width int) string {
	if width <= 0 {
		width = 70
	}

	var (
		result  strings.Builder
		lineLen int
	)

	for _, word := range strings.Fields(text) {
		wordLen := len([]rune(word))

		if lineLen > 0 && lineLen+1+wordLen > width {
			result.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

// formatTimeAgo formats t relative to now as a human-readable "X ago" string
func formatTimeAgo(t, now time.Time) string {
	duration := now.Sub(t)

	switch {
	case duration < time.Minute:
		return "just now"
	case duration < time.Hour:
		mins := int(duration.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case duration < 24*time.Hour:
		hours := int(duration.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return t.Format("2006-01-02")
	}
}
