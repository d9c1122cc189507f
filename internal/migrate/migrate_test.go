package migrate_test

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/deepceutix/datagen/internal/database"
	"github.com/deepceutix/datagen/internal/migrate"
)

func openDB(t *testing.T) *migrate.Migrator {
	t.Helper()
	db, err := database.Open(context.Background(), database.Options{Driver: database.DriverSQLite, URL: ":memory:"})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return migrate.New(db)
}

func TestLoad_Embedded(t *testing.T) {
	m := openDB(t)
	all, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(all) < 2 || all[0].Version != 1 || all[0].Name != "create_runs" {
		t.Fatalf("unexpected migrations %+v", all)
	}
	for _, mg := range all {
		if mg.DownSQL == "" {
			t.Errorf("migration %d has no down SQL", mg.Version)
		}
	}
}

func TestUpAndDown(t *testing.T) {
	m := openDB(t)
	var out bytes.Buffer
	m.Out = &out
	ctx := context.Background()

	if err := m.Up(ctx); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	v, dirty, err := m.Version(ctx)
	if err != nil || dirty || v != 2 {
		t.Fatalf("after Up: version %d dirty %v err %v", v, dirty, err)
	}
	if !strings.Contains(out.String(), "Migrated to version 2 (2 migrations applied)") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := m.Up(ctx); err != nil {
		t.Fatalf("second Up failed: %v", err)
	}
	if out.String() != "No migrations to run\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	if err := m.To(ctx, 0); err != nil {
		t.Fatalf("To(0) failed: %v", err)
	}
	if v, _, _ := m.Version(ctx); v != 0 {
		t.Errorf("expected version 0, got %d", v)
	}
	var n int
	if err := m.DB.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 'runs'`).Scan(&n); err != nil || n != 0 {
		t.Errorf("runs table should be dropped, count %d err %v", n, err)
	}

	if err := m.To(ctx, 1); err != nil {
		t.Fatalf("To(1) failed: %v", err)
	}
	if v, _, _ := m.Version(ctx); v != 1 {
		t.Errorf("expected version 1, got %d", v)
	}
}

func TestUp_CustomFS(t *testing.T) {
	m := openDB(t)
	m.FS = fstest.MapFS{
		"001_a.up.sql":   {Data: []byte("CREATE TABLE a (id INTEGER);")},
		"002_b.up.sql":   {Data: []byte("CREATE TABLE b (id INTEGER); CREATE TABLE c (id INTEGER);")},
		"002_b.down.sql": {Data: []byte("DROP TABLE c; DROP TABLE b;")},
		"README.md":      {Data: []byte("ignored")},
	}
	ctx := context.Background()
	if err := m.Up(ctx); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if err := m.To(ctx, 1); err != nil {
		t.Fatalf("To(1) failed: %v", err)
	}
	if err := m.To(ctx, 0); err == nil {
		t.Error("expected error for missing down migration")
	}
}

func TestUp_RefusesDirty(t *testing.T) {
	m := openDB(t)
	ctx := context.Background()
	if err := m.EnsureTable(ctx); err != nil {
		t.Fatalf("EnsureTable failed: %v", err)
	}
	if _, err := m.DB.Exec(`INSERT INTO schema_migrations (version, dirty) VALUES (1, 1)`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := m.Up(ctx); err == nil || !strings.Contains(err.Error(), "dirty") {
		t.Errorf("expected dirty error, got %v", err)
	}
}

func TestSplitSQL(t *testing.T) {
	got := migrate.SplitSQL("CREATE TABLE a (x);\n\n  ;CREATE INDEX i ON a(x)\n")
	want := []string{"CREATE TABLE a (x)", "CREATE INDEX i ON a(x)"}
	if !slices.Equal(got, want) {
		t.Errorf("SplitSQL = %q, want %q", got, want)
	}
}
