package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/lepinkainen/video-digest/internal/summarize"
	"github.com/lepinkainen/video-digest/pkg/testutil"
	"github.com/lepinkainen/video-digest/templates"
)

var runDate = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func newTestWriter(t *testing.T, dir string) *Writer {
	t.Helper()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	return w
}

func TestWriter_Filename(t *testing.T) {
	w := newTestWriter(t, t.TempDir())

	tests := []struct {
		channel string
		title   string
		want    string
	}{
		{channel: "Demo", title: "Test Video", want: "2026-10-19-Demo-Test Video.md"},
		{channel: "TeddyNote", title: "RAG: what/why?", want: "2026-10-19-TeddyNote-RAG whatwhy.md"},
		{channel: "Mr.5PM", title: `"Quoted" <b>`, want: "2026-10-19-Mr.5PM-Quoted b.md"},
	}

	for _, tt := range tests {
		if got := w.Filename(runDate, tt.channel, tt.title); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.channel, tt.title, got, tt.want)
		}
	}
}

func TestFormatDate_IsUTC(t *testing.T) {
	// 2026-10-20 01:00 in Seoul is still 2026-10-19 in UTC
	seoul := time.FixedZone("KST", 9*60*60)

	if got := FormatDate(time.Date(2026, 10, 20, 1, 0, 0, 0, seoul)); got != "2026-10-19" {
		t.Errorf("FormatDate() = %q, want 2026-10-19", got)
	}
}

func TestWriter_Write_DateAcrossMidnight(t *testing.T) {
	started := time.Date(2026, 10, 19, 23, 59, 59, 999_000_000, time.UTC)
	dir := t.TempDir()
	w := newTestWriter(t, dir)

	path, err := w.Write(started, "Demo", "T", "https://youtu.be/t", summarize.Result{Summary: "late"})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if want := filepath.Join(dir, "2026-10-19-Demo-T.md"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "- **Summary date**: 2026-10-19\n") {
		t.Errorf("document date differs from the filename date:\n%s", content)
	}
}

func TestWriter_Render_Golden(t *testing.T) {
	w := newTestWriter(t, t.TempDir())

	content, err := w.Render(runDate, "https://www.youtube.com/watch?v=vid00000001", summarize.Result{
		Summary:  "Agents plan, call tools and report back.",
		Keywords: []string{"agents", "tools", "llm"},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	testutil.CompareGoldenBytes(t, filepath.Join("testdata", "summary.golden.md"), content)
}

func TestWriter_Render_EmptyResult(t *testing.T) {
	w := newTestWriter(t, t.TempDir())

	content, err := w.Render(runDate, "https://youtu.be/xyz", summarize.Result{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	doc := string(content)
	for _, want := range []string{
		"# YouTube Video Summary",
		"- **Link**: https://youtu.be/xyz",
		"- **Summary date**: 2026-10-19",
		"## 📋 Summary",
		"## 🔑 Keywords",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document is missing %q:\n%s", want, doc)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := newTestWriter(t, dir)

	path, err := w.Write(runDate, "Demo", "Test Video", "https://youtu.be/xyz", summarize.Result{
		Summary:  "Hello",
		Keywords: []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if want := filepath.Join(dir, "2026-10-19-Demo-Test Video.md"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !strings.Contains(string(content), "Hello") || !strings.Contains(string(content), "a, b") {
		t.Errorf("unexpected document:\n%s", content)
	}
}

func TestWriter_Write_Overwrites(t *testing.T) {
	dir := t.TempDir()
	w := newTestWriter(t, dir)

	first, err := w.Write(runDate, "Demo", "Same Title", "https://youtu.be/1", summarize.Result{Summary: "first run with a much longer body"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Write(runDate, "Demo", "Same Title", "https://youtu.be/2", summarize.Result{Summary: "second"})
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Fatalf("paths differ: %q vs %q", first, second)
	}

	content, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "first run") || !strings.Contains(string(content), "second") {
		t.Errorf("file was not fully replaced:\n%s", content)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d files, want 1", len(entries))
	}
}

func TestLoadTemplate_Override(t *testing.T) {
	SetTemplateOverrideFS(fstest.MapFS{
		SummaryTemplate: {Data: []byte("custom {{ .URL }} [{{ join .Keywords \"|\" }}]")},
	})
	t.Cleanup(func() { SetTemplateOverrideFS(os.DirFS("templates")) })

	w := newTestWriter(t, t.TempDir())
	content, err := w.Render(runDate, "https://youtu.be/xyz", summarize.Result{Keywords: []string{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}

	if got := string(content); got != "custom https://youtu.be/xyz [a|b]" {
		t.Errorf("Render() = %q", got)
	}
}

func TestLoadTemplate_Missing(t *testing.T) {
	SetTemplateOverrideFS(fstest.MapFS{})
	SetTemplateFallbackFS(fstest.MapFS{})
	t.Cleanup(func() {
		SetTemplateOverrideFS(os.DirFS("templates"))
		SetTemplateFallbackFS(templates.EmbeddedTemplates)
	})

	if _, err := NewWriter(t.TempDir()); err == nil {
		t.Error("NewWriter() error = nil, want missing template error")
	}
}
