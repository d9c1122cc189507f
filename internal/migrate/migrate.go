// Package migrate applies the embedded SQL migrations to the run store.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/deepceutix/datagen/migrations"
)

// Migration is one numbered schema change with up and optional down SQL.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var upPattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Migrator runs migrations from a file system, reporting progress to Out.
type Migrator struct {
	DB  *sql.DB
	FS  fs.FS
	Out io.Writer
}

// New returns a migrator over the embedded migrations that reports nothing.
func New(db *sql.DB) *Migrator {
	return &Migrator{DB: db, FS: migrations.FS, Out: io.Discard}
}

// RunAll applies every pending migration on db.
func RunAll(ctx context.Context, db *sql.DB) error {
	return New(db).Up(ctx)
}

func (m *Migrator) printf(format string, args ...any) {
	fmt.Fprintf(m.Out, format, args...)
}

// EnsureTable creates schema_migrations if it doesn't exist.
func (m *Migrator) EnsureTable(ctx context.Context) error {
	_, err := m.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

// Version returns the current version and dirty state.
func (m *Migrator) Version(ctx context.Context) (int, bool, error) {
	var version, dirty int
	err := m.DB.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty == 1, nil
}

func (m *Migrator) setVersion(ctx context.Context, version int, dirty bool) error {
	if _, err := m.DB.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version <= 0 {
		return nil
	}
	d := 0
	if dirty {
		d = 1
	}
	_, err := m.DB.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, d)
	return err
}

// Load reads every *.up.sql file and its matching down file, sorted by version.
func (m *Migrator) Load() ([]Migration, error) {
	var result []Migration
	err := fs.WalkDir(m.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		matches := upPattern.FindStringSubmatch(path.Base(p))
		if matches == nil {
			return nil
		}
		version, _ := strconv.Atoi(matches[1])
		up, err := fs.ReadFile(m.FS, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		down, _ := fs.ReadFile(m.FS, path.Join(path.Dir(p), strings.TrimSuffix(path.Base(p), ".up.sql")+".down.sql"))
		result = append(result, Migration{
			Version: version,
			Name:    matches[2],
			UpSQL:   string(up),
			DownSQL: string(down),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	return result, nil
}

// prepare ensures the bookkeeping table, refuses dirty databases and loads
// migrations.
func (m *Migrator) prepare(ctx context.Context) (int, []Migration, error) {
	if err := m.EnsureTable(ctx); err != nil {
		return 0, nil, fmt.Errorf("failed to create migrations table: %w", err)
	}
	current, dirty, err := m.Version(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get current version: %w", err)
	}
	if dirty {
		return 0, nil, fmt.Errorf("database is in dirty state at version %d", current)
	}
	all, err := m.Load()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return current, all, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	current, all, err := m.prepare(ctx)
	if err != nil {
		return err
	}
	count := 0
	for _, mg := range all {
		if mg.Version <= current {
			continue
		}
		if err := m.apply(ctx, mg, true); err != nil {
			return err
		}
		count++
	}
	if count == 0 {
		m.printf("No migrations to run\n")
		return nil
	}
	v, _, _ := m.Version(ctx)
	m.printf("Migrated to version %d (%d migrations applied)\n", v, count)
	return nil
}

// To migrates up or down to target.
func (m *Migrator) To(ctx context.Context, target int) error {
	current, all, err := m.prepare(ctx)
	if err != nil {
		return err
	}
	switch {
	case target > current:
		for _, mg := range all {
			if mg.Version <= current {
				continue
			}
			if mg.Version > target {
				break
			}
			if err := m.apply(ctx, mg, true); err != nil {
				return err
			}
		}
	case target < current:
		for i := len(all) - 1; i >= 0; i-- {
			mg := all[i]
			if mg.Version > current {
				continue
			}
			if mg.Version <= target {
				break
			}
			if mg.DownSQL == "" {
				return fmt.Errorf("no down migration for version %d", mg.Version)
			}
			if err := m.apply(ctx, mg, false); err != nil {
				return err
			}
		}
	default:
		m.printf("Already at target version\n")
		return nil
	}
	m.printf("Migrated to version %d\n", target)
	return nil
}

func (m *Migrator) apply(ctx context.Context, mg Migration, up bool) error {
	direction, body, target := "up", mg.UpSQL, mg.Version
	if !up {
		direction, body, target = "down", mg.DownSQL, mg.Version-1
	}
	m.printf("  %s %03d_%s...\n", direction, mg.Version, mg.Name)

	if err := m.setVersion(ctx, mg.Version, true); err != nil {
		return fmt.Errorf("failed to set dirty flag: %w", err)
	}
	for _, stmt := range SplitSQL(body) {
		if _, err := m.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %d %s: %w\nSQL: %s", mg.Version, direction, err, stmt)
		}
	}
	if err := m.setVersion(ctx, target, false); err != nil {
		return fmt.Errorf("failed to clear dirty flag: %w", err)
	}
	return nil
}

// SplitSQL splits on semicolons and drops empty statements. Semicolons
// inside string literals are not supported.
func SplitSQL(s string) []string {
	var out []string
	for _, stmt := range strings.Split(s, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
