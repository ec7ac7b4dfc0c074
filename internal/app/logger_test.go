package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/makerlab-backend/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	tests := []struct {
		format     string
		wantJSON   bool
		wantSource bool
	}{
		{format: "json", wantJSON: true},
		{format: "JSON", wantJSON: true},
		{format: "text", wantSource: true},
		{format: "", wantSource: true},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(config.LogConfig{Level: "info", Format: tt.format}, &buf)
			logger.Info("workspace created", slog.String("workspace_id", "w-1"))

			var m map[string]any
			isJSON := json.Unmarshal(buf.Bytes(), &m) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("json output = %v, want %v: %s", isJSON, tt.wantJSON, buf.String())
			}
			out := buf.String()
			if got := strings.Contains(out, "source"); got != tt.wantSource {
				t.Errorf("source present = %v, want %v: %s", got, tt.wantSource, out)
			}
			for _, want := range []string{"makerlab", "w-1", Version} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q: %s", want, out)
				}
			}
		})
	}
}

func TestNewLogger_SetsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Format: "json"}, &buf)

	if slog.Default().Handler() != logger.Handler() {
		t.Error("NewLogger should install the returned logger as slog default")
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" Info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warn+2", slog.LevelWarn + 2},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := logLevel(tt.in); got != tt.want {
			t.Errorf("logLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Log(context.Background(), slog.LevelInfo, "dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be suppressed at warn, got %s", buf.String())
	}
	logger.Log(context.Background(), slog.LevelWarn, "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}

func TestBuildVersion(t *testing.T) {
	got := BuildVersion()
	if !strings.HasPrefix(got, Version+" (commit: ") {
		t.Errorf("BuildVersion() = %q, want prefix %q", got, Version)
	}
	if !strings.Contains(got, "built: ") {
		t.Errorf("BuildVersion() = %q, missing build time", got)
	}

	Commit, BuildTime = "0123456789abcdef", "2026-01-02"
	t.Cleanup(func() { Commit, BuildTime = "", "" })
	if got := BuildVersion(); got != Version+" (commit: 0123456789ab, built: 2026-01-02)" {
		t.Errorf("BuildVersion() with ldflags = %q", got)
	}
}
