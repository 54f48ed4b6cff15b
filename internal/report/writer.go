// Package report renders summarization results into Markdown documents on disk.
package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"text/template"
	"time"

	"github.com/lepinkainen/video-digest/internal/summarize"
	"github.com/lepinkainen/video-digest/pkg/filesystem"
)

// DateLayout is the layout of the date in filenames and documents
const DateLayout = "2006-01-02"

// Document is the data passed to the summary template
type Document struct {
	URL      string
	Date     string
	Summary  string
	Keywords []string
}

// Writer writes one Markdown file per summarized video into a directory
type Writer struct {
	dir  string
	tmpl *template.Template
}

// NewWriter loads the summary template
func NewWriter(outputDir string) (*Writer, error) {
	tmpl, err := LoadTemplate(SummaryTemplate)
	if err != nil {
		return nil, err
	}

	return &Writer{dir: outputDir, tmpl: tmpl}, nil
}

// FormatDate returns the UTC calendar date of t as used in filenames and documents
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Filename returns the document name for a video selected on date, without the directory
func (w *Writer) Filename(date time.Time, channel, title string) string {
	return fmt.Sprintf("%s-%s-%s.md", FormatDate(date), channel, SanitizeFilename(title))
}

// Render produces the Markdown document for a result
func (w *Writer) Render(date time.Time, url string, result summarize.Result) ([]byte, error) {
	doc := Document{
		URL:      url,
		Date:     FormatDate(date),
		Summary:  result.Summary,
		Keywords: result.Keywords,
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", SummaryTemplate, err)
	}
	return buf.Bytes(), nil
}

// Write renders the document and writes it, replacing any existing file of the same name.
// date is the run's reference time; the filename and the document both carry its UTC date.
// It returns the written path.
func (w *Writer) Write(date time.Time, channel, title, url string, result summarize.Result) (string, error) {
	content, err := w.Render(date, url, result)
	if err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, w.Filename(date, channel, title))
	if err := filesystem.WriteFile(path, content); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	slog.Info("Saved", "path", path)
	return path, nil
}
