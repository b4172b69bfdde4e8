package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"verbose", slog.LevelWarn},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	t.Setenv(LevelEnv, "info")
	t.Setenv(FormatEnv, "")

	var buf bytes.Buffer
	New(&buf).Info("tick", "step", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected json, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "tick" || rec["app"] != "rcsaid" {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestNew_TextAndLevel(t *testing.T) {
	t.Setenv(LevelEnv, "error")
	t.Setenv(FormatEnv, "text")

	var buf bytes.Buffer
	l := New(&buf)
	l.Warn("dropped")
	l.Error("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("warn should be filtered at error level")
	}
	if !strings.Contains(out, "msg=kept") {
		t.Errorf("expected text record, got %q", out)
	}
}
