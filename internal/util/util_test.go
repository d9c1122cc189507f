package util

import (
	"database/sql"
	"testing"
	"time"
)

func TestNullHelpers(t *testing.T) {
	if NullString("").Valid {
		t.Error("empty string should be null")
	}
	if ns := NullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("NullString(x) = %+v", ns)
	}
	if NullInt64(nil).Valid {
		t.Error("nil pointer should be null")
	}
	v := int64(7)
	if ni := NullInt64(&v); !ni.Valid || ni.Int64 != 7 {
		t.Errorf("NullInt64(7) = %+v", ni)
	}
	if Int64Ptr(sql.NullInt64{}) != nil {
		t.Error("invalid NullInt64 should give nil")
	}
	if p := Int64Ptr(sql.NullInt64{Int64: 3, Valid: true}); p == nil || *p != 3 {
		t.Errorf("Int64Ptr = %v", p)
	}
	if BoolToInt64(true) != 1 || BoolToInt64(false) != 0 {
		t.Error("BoolToInt64 mismatch")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDurationMs(t *testing.T) {
	ms := func(v int64) *int64 { return &v }
	tests := []struct {
		name string
		in   *int64
		want string
	}{
		{"nil", nil, "-"},
		{"millis", ms(250), "250ms"},
		{"seconds", ms(1500), "1.5s"},
		{"minutes", ms(90000), "1m30s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDurationMs(tt.in); got != tt.want {
				t.Errorf("FormatDurationMs = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime(time.Time{}); got != "-" {
		t.Errorf("zero time = %q", got)
	}
	at := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)
	if got := FormatDateTime(at); got != "2024-03-01 09:05" {
		t.Errorf("FormatDateTime = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("a long prompt text", 9); got != "a long..." {
		t.Errorf("got %q", got)
	}
}
