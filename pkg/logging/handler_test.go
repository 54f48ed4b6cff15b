package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_LevelMarkers(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "info",
			log:  func(l *slog.Logger) { l.Info("No new videos today", "channel", "Demo") },
			want: "[INFO] No new videos today channel=Demo\n",
		},
		{
			name: "error with error value",
			log: func(l *slog.Logger) {
				l.Error("Video summary failed", "title", "Test Video", "error", errors.New("boom"))
			},
			want: "[ERROR] Video summary failed title=\"Test Video\" error=\"boom\"\n",
		},
		{
			name: "warn",
			log:  func(l *slog.Logger) { l.Warn("Feed unavailable") },
			want: "[WARN] Feed unavailable\n",
		},
		{
			name: "debug",
			log:  func(l *slog.Logger) { l.Debug("Fetching", "count", 3) },
			want: "[DEBUG] Fetching count=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(New(&buf, slog.LevelDebug))

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, nil)

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered at default level, got %q", out)
	}
	if !strings.Contains(out, "[INFO] shown") {
		t.Errorf("info record missing, got %q", out)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo).With("channel", "Demo").WithGroup("video")

	logger.Info("Saved", "path", "/tmp/out.md")

	want := "[INFO] Saved channel=Demo video.path=/tmp/out.md\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandler_ValueFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo)

	logger.Info("done",
		"empty", "",
		"took", 1500*time.Microsecond,
		"at", time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		slog.Group("req", "status", 200),
	)

	want := `[INFO] done empty="" took=2ms at=2026-10-19T08:00:00Z req.status=200` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestHandler_NoColourForPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Error("failed")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("plain writer should not receive ANSI escapes, got %q", buf.String())
	}
}

func TestHandler_CustomLevelsUseBucketStyle(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, slog.LevelDebug)

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug - 4, "DEBUG"},
		{slog.LevelInfo + 2, "INFO"},
		{slog.LevelWarn + 1, "WARN"},
		{slog.LevelError + 4, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, ok := h.style(tt.level)
			if !ok {
				t.Fatalf("style(%v) not found", tt.level)
			}
			if want := h.styles[tt.want]; got.GetForeground() != want.GetForeground() {
				t.Errorf("style(%v) foreground = %v, want %s colour %v", tt.level, got.GetForeground(), tt.want, want.GetForeground())
			}
		})
	}
}

func TestHandler_CustomLevelMarker(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelDebug).Log(context.Background(), slog.LevelInfo+2, "Notice")

	if got := buf.String(); got != "[INFO] Notice\n" {
		t.Errorf("output = %q, want %q", got, "[INFO] Notice\n")
	}
}
