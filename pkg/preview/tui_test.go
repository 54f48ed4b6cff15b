package preview

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func threeItems() []Item {
	items := make([]Item, 3)
	for i := range items {
		items[i] = sampleItem()
		items[i].Title = []string{"first", "second", "third"}[i]
	}
	return items
}

func TestModel_Navigation(t *testing.T) {
	m := NewModel(threeItems(), previewNow)

	m, _ = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyDown}, runes("j"))
	if m.Cursor() != 2 {
		t.Errorf("cursor = %d after moving past the end, want 2", m.Cursor())
	}

	m, _ = press(t, m, runes("k"), tea.KeyMsg{Type: tea.KeyUp}, runes("k"))
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d after moving past the start, want 0", m.Cursor())
	}
}

func TestModel_DetailView(t *testing.T) {
	m := NewModel(threeItems(), previewNow)

	m, _ = press(t, m, runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Mode() != DetailViewMode {
		t.Fatalf("mode = %v, want detail", m.Mode())
	}
	if view := m.View(); !strings.Contains(view, "Title: second") {
		t.Errorf("detail view does not show the selected item:\n%s", view)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Mode() != ListViewMode {
		t.Errorf("mode = %v after esc, want list", m.Mode())
	}
}

func TestModel_ListView(t *testing.T) {
	m := NewModel(threeItems(), previewNow)
	view := m.View()

	if !strings.Contains(view, "Today's videos - 2026-10-19 (3 items)") {
		t.Errorf("list header missing:\n%s", view)
	}
	for _, title := range []string{"first", "second", "third"} {
		if !strings.Contains(view, title) {
			t.Errorf("list view is missing %q", title)
		}
	}
}

func TestModel_VisibleRange(t *testing.T) {
	items := make([]Item, 20)
	m := NewModel(items, previewNow)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	start, end := m.visibleRange()
	if start != 0 || end != 4 {
		t.Errorf("visibleRange() at top = %d..%d, want 0..4", start, end)
	}

	m.cursor = 19
	start, end = m.visibleRange()
	if start != 16 || end != 20 {
		t.Errorf("visibleRange() at bottom = %d..%d, want 16..20", start, end)
	}
}

func TestModel_EnterOnEmptyList(t *testing.T) {
	m, _ := press(t, NewModel(nil, previewNow), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Mode() != ListViewMode {
		t.Errorf("mode = %v, want list for an empty preview", m.Mode())
	}
}

func TestModel_Quit(t *testing.T) {
	_, cmd := press(t, NewModel(threeItems(), previewNow), runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q did not quit")
	}
}

func TestPrintItem(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintItem(&buf, threeItems(), 2, previewNow); err != nil {
		t.Fatalf("PrintItem() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Title: third") {
		t.Errorf("PrintItem() = %q", buf.String())
	}

	if err := PrintItem(&buf, threeItems(), 3, previewNow); err == nil {
		t.Error("PrintItem() out of range error = nil")
	}
}
