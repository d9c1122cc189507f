package turso_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/deepceutix/datagen/internal/database"
	"github.com/deepceutix/datagen/internal/migrate"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Options{Driver: database.DriverSQLite, URL: ":memory:"})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	if err := migrate.RunAll(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}
