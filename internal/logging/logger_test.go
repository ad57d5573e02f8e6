package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase INFO", "INFO", slog.LevelInfo},
		{"uppercase TRACE", "TRACE", LevelTrace},
		{"mixed case Debug", "Debug", slog.LevelDebug},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{"info filters debug", "info", false},
		{"debug passes debug", "debug", true},
		{"trace passes debug", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("revision applied", "agent", 2)
			gotDebug := strings.Contains(buf.String(), "revision applied")
			if gotDebug != tt.wantDebug {
				t.Errorf("debug visible = %v, want %v (buf: %q)", gotDebug, tt.wantDebug, buf.String())
			}

			buf.Reset()
			logger.Info("run complete", "steps", 10)
			if !strings.Contains(buf.String(), "run complete") {
				t.Errorf("info message suppressed at level %q (buf: %q)", tt.level, buf.String())
			}
		})
	}
}

func TestTraceLevelLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)

	logger.Log(context.Background(), LevelTrace, "profile detail", "step", 3)
	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("trace output missing TRACE label: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "profile detail") {
		t.Errorf("trace output missing message: %q", buf.String())
	}
}

func TestLevelTrace(t *testing.T) {
	// Trace sits below debug (more verbose)
	if LevelTrace >= slog.LevelDebug {
		t.Errorf("LevelTrace (%d) should be less than LevelDebug (%d)", LevelTrace, slog.LevelDebug)
	}
}
