package database

import (
	"context"
	"testing"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(context.Background(), Options{Driver: DriverSQLite, URL: ":memory:", Ping: true})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("PRAGMA failed: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign keys on, got %d", fk)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []Options{
		{Driver: "postgres", URL: "file:x.db"},
		{Driver: DriverSQLite},
	}
	for _, opts := range tests {
		if _, err := Open(context.Background(), opts); err == nil {
			t.Errorf("Open(%+v) expected error", opts)
		}
	}
}

func TestIsRemote(t *testing.T) {
	tests := map[string]bool{
		"libsql://db.turso.io": true,
		"https://db.turso.io":  true,
		"file:datagen.db":      false,
		"file::memory:":        false,
		"/var/lib/datagen.db":  false,
	}
	for url, want := range tests {
		if got := IsRemote(url); got != want {
			t.Errorf("IsRemote(%q) = %v, want %v", url, got, want)
		}
	}
}

func TestWithAuthToken(t *testing.T) {
	tests := []struct {
		url, token, want string
	}{
		{"libsql://db.turso.io", "abc", "libsql://db.turso.io?authToken=abc"},
		{"libsql://db.turso.io?tls=1", "abc", "libsql://db.turso.io?authToken=abc&tls=1"},
		{"file:datagen.db", "a+b/c=", "file:datagen.db?authToken=a%2Bb%2Fc%3D"},
	}
	for _, tt := range tests {
		got, err := withAuthToken(tt.url, tt.token)
		if err != nil {
			t.Fatalf("withAuthToken(%q) failed: %v", tt.url, err)
		}
		if got != tt.want {
			t.Errorf("withAuthToken(%q, %q) = %q, want %q", tt.url, tt.token, got, tt.want)
		}
	}
	if _, err := withAuthToken("libsql://bad host\x7f", "t"); err == nil {
		t.Error("expected error for invalid URL")
	}
}
