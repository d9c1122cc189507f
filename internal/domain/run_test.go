package domain

import (
	"errors"
	"testing"
	"time"
)

func TestRun_Finish(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		r := &Run{StartedAt: start, Status: RunStatusRunning}
		r.Finish(start.Add(1500*time.Millisecond), nil)
		if r.Status != RunStatusSucceeded {
			t.Errorf("expected succeeded, got %s", r.Status)
		}
		if r.DurationMs == nil || *r.DurationMs != 1500 {
			t.Errorf("expected 1500ms, got %v", r.DurationMs)
		}
		if r.Error != "" {
			t.Errorf("unexpected error text %q", r.Error)
		}
	})

	t.Run("failure", func(t *testing.T) {
		r := &Run{StartedAt: start, Status: RunStatusRunning}
		r.Finish(start, errors.New("boom"))
		if r.Status != RunStatusFailed || r.Error != "boom" {
			t.Errorf("unexpected run %+v", r)
		}
	})
}

func TestArtifactKeys(t *testing.T) {
	if got := PlotKey("abc"); got != "abc/plot.png" {
		t.Errorf("PlotKey = %q", got)
	}
	if got := DataKey("abc"); got != "abc/data.json" {
		t.Errorf("DataKey = %q", got)
	}
}
