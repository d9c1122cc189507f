package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("hidden")
	l.Info("shown")
	l.Error("boom")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line should be filtered: %q", got)
	}
	want := "2024-01-02T03:04:05Z [INFO] shown\n2024-01-02T03:04:05Z [ERROR] boom\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" DEBUG ", LevelDebug},
		{"error", LevelError},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
