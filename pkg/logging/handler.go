// Package logging provides a slog handler that prints console lines with bracketed level markers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Handler writes records as `[LEVEL] message key=value ...`.
// Level markers are coloured only when the writer is a colour-capable terminal.
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	styles map[string]lipgloss.Style
	attrs  []slog.Attr
	group  string
}

// NewHandler creates a handler writing to w. A nil level means slog.LevelInfo.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}

	renderer := lipgloss.NewRenderer(w)
	return &Handler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		styles: map[string]lipgloss.Style{
			"DEBUG": renderer.NewStyle().Foreground(lipgloss.Color("240")),
			"INFO":  renderer.NewStyle().Foreground(lipgloss.Color("12")),
			"WARN":  renderer.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			"ERROR": renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

// New returns a logger backed by a Handler
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(NewHandler(w, level))
}

// Enabled implements slog.Handler
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(h.marker(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

// WithAttrs implements slog.Handler
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements slog.Handler
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if h.group != "" {
		clone.group = h.group + "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func (h *Handler) marker(level slog.Level) string {
	label := "[" + levelName(level) + "]"
	style, ok := h.style(level)
	if !ok {
		return label
	}
	return style.Render(label)
}

// style picks the colour for the level's bucket, so in-between levels such as LevelInfo+2 share INFO's
func (h *Handler) style(level slog.Level) (lipgloss.Style, bool) {
	style, ok := h.styles[levelName(level)]
	return style, ok
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return fmt.Sprintf("%q", s)
		}
		return s
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return fmt.Sprintf("%q", err.Error())
		}
		return fmt.Sprintf("%v", v.Any())
	default:
		return v.String()
	}
}
