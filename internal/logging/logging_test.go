package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("snapshot imported", "elements", 42, "path", "scan.json")

	out := buf.String()
	if !strings.Contains(out, "[info] snapshot imported") {
		t.Errorf("missing level/message: %q", out)
	}
	if !strings.Contains(out, "elements=42") {
		t.Errorf("missing int attr: %q", out)
	}
	if !strings.Contains(out, "path=scan.json") {
		t.Errorf("missing string attr: %q", out)
	}
}

func TestHandlerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("info record leaked through warn-level handler")
	}
	if !strings.Contains(out, "[warn] should appear") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo).With("run", "abc").WithGroup("impact")

	logger.Info("done", "count", 3)

	out := buf.String()
	if !strings.Contains(out, "run=abc") {
		t.Errorf("missing pre-set attr: %q", out)
	}
	if !strings.Contains(out, "impact.count=3") {
		t.Errorf("missing group-prefixed attr: %q", out)
	}
}

func TestQuotedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Info("msg", "desc", "two words")

	if !strings.Contains(buf.String(), `desc="two words"`) {
		t.Errorf("expected quoted value: %q", buf.String())
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := LevelFromString(tt.in); got != tt.want {
			t.Errorf("LevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	// Must not panic and must swallow everything.
	logger.Error("dropped")
}
