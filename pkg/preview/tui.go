package preview

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the preview TUI
const (
	ListViewMode ViewMode = iota
	DetailViewMode
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model represents the Bubble Tea model for the preview TUI
type Model struct {
	items         []Item
	date          string
	now           time.Time
	cursor        int
	viewMode      ViewMode
	width         int
	height        int
	selectedIndex int // item shown in the detail view
}

// NewModel creates a new preview model for the videos published on now's UTC date
func NewModel(items []Item, now time.Time) Model {
	return Model{
		items:         items,
		date:          now.UTC().Format("2006-01-02"),
		now:           now,
		viewMode:      ListViewMode,
		selectedIndex: -1,
	}
}

// Cursor returns the index of the highlighted item
func (m Model) Cursor() int { return m.cursor }

// Mode returns the active view
func (m Model) Mode() ViewMode { return m.viewMode }

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ListViewMode:
			return m.updateListView(msg)
		case DetailViewMode:
			return m.updateDetailView(msg)
		}
	}

	return m, nil
}

func (m Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.items) > 0 {
			m.selectedIndex = m.cursor
			m.viewMode = DetailViewMode
		}
	}

	return m, nil
}

func (m Model) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc", "backspace":
		m.viewMode = ListViewMode
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.viewMode == DetailViewMode {
		return m.renderDetailView()
	}
	return m.renderListView()
}

func (m Model) renderListView() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Today's videos - %s (%d items)", m.date, len(m.items))))
	b.WriteString("\n\n")

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		line := FormatCompactListItem(i, m.items[i])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ or j/k: navigate • enter: view details • q: quit"))

	return b.String()
}

// visibleRange keeps the cursor near the middle of the screen when the list does not fit
func (m Model) visibleRange() (int, int) {
	start, end := 0, len(m.items)
	if m.height <= 0 {
		return start, end
	}

	maxVisible := m.height - 6 // header, footer and padding
	if maxVisible <= 0 || maxVisible >= len(m.items) {
		return start, end
	}

	start = max(m.cursor-maxVisible/2, 0)
	end = start + maxVisible
	if end > len(m.items) {
		end = len(m.items)
		start = max(end-maxVisible, 0)
	}
	return start, end
}

func (m Model) renderDetailView() string {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.items) {
		return "No item selected"
	}

	var b strings.Builder
	b.WriteString(FormatDetailedItem(m.items[m.selectedIndex], m.now))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("esc: back to list • q: quit"))

	return b.String()
}

// PrintItem writes item index (zero based) as plain text, for use without a terminal
func PrintItem(w io.Writer, items []Item, index int, now time.Time) error {
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range: %d items today", index, len(items))
	}
	_, err := io.WriteString(w, FormatDetailedItem(items[index], now))
	return err
}

// Run starts the Bubble Tea program
func Run(items []Item, now time.Time) error {
	if len(items) == 0 {
		fmt.Println("No videos published today")
		return nil
	}

	p := tea.NewProgram(NewModel(items, now), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
