// Package database opens the run store connection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
	_ "modernc.org/sqlite"
)

const (
	// DriverLibSQL is go-libsql: local files or a remote Turso database.
	DriverLibSQL = "libsql"
	// DriverSQLite is the pure-Go modernc driver, for CGO-free builds and tests.
	DriverSQLite = "sqlite"
)

// Options configures Open.
type Options struct {
	Driver    string
	URL       string
	AuthToken string
	Ping      bool
}

// Open connects to the run store and enables foreign keys.
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverLibSQL
	}
	if driver != DriverLibSQL && driver != DriverSQLite {
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
	if opts.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	dsn := opts.URL
	if driver == DriverLibSQL && opts.AuthToken != "" {
		var err error
		if dsn, err = withAuthToken(opts.URL, opts.AuthToken); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if IsRemote(opts.URL) {
		// Turso closes idle Hrana streams aggressively.
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(0)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(0)
	} else {
		// One connection keeps in-memory databases and PRAGMAs consistent.
		db.SetMaxOpenConns(1)
	}

	if opts.Ping {
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// IsRemote reports whether url points at a libsql server rather than a file.
func IsRemote(url string) bool {
	for _, scheme := range []string{"libsql://", "http://", "https://", "wss://", "ws://"} {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}

// withAuthToken sets the authToken query parameter, keeping any existing query.
func withAuthToken(rawURL, token string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	q := u.Query()
	q.Set("authToken", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
