package turso

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deepceutix/datagen/internal/domain"
	"github.com/deepceutix/datagen/internal/ports"
	"github.com/deepceutix/datagen/internal/util"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `id, kind, target, seed, noise, points, status, data_exported, error, started_at, ended_at, duration_ms`

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Create(ctx context.Context, run *domain.Run) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			string(run.Kind),
			run.Target,
			run.Params.Seed,
			util.BoolToInt64(run.Params.Noise),
			run.Params.Points,
			string(run.Status),
			util.BoolToInt64(run.DataExported),
			util.NullString(run.Error),
			run.StartedAt.UTC().Format(timeLayout),
			nullTime(run.EndedAt),
			util.NullInt64(run.DurationMs),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run: %w", err)
		}
		return writeDetails(ctx, tx, run)
	})
}

func (r *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE runs SET status = ?, data_exported = ?, error = ?, ended_at = ?, duration_ms = ?
			WHERE id = ?`,
			string(run.Status),
			util.BoolToInt64(run.DataExported),
			util.NullString(run.Error),
			nullTime(run.EndedAt),
			util.NullInt64(run.DurationMs),
			run.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update run: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrRunNotFound
		}
		for _, table := range []string{"run_summary_lines", "run_artifacts"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, run.ID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return writeDetails(ctx, tx, run)
	})
}

func (r *RunRepository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if err := r.loadDetails(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs newest first.
func (r *RunRepository) List(ctx context.Context, opts ports.ListRunsOptions) ([]*domain.Run, error) {
	var (
		where []string
		args  []any
	)
	if opts.Kind != nil {
		where = append(where, "kind = ?")
		args = append(args, string(*opts.Kind))
	}
	if opts.Target != nil {
		where = append(where, "target = ?")
		args = append(args, *opts.Target)
	}
	q := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY started_at DESC, id`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	_ = rows.Close()

	for _, run := range runs {
		if err := r.loadDetails(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *RunRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func writeDetails(ctx context.Context, tx *sql.Tx, run *domain.Run) error {
	for i, line := range run.Summary {
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_summary_lines (run_id, position, line) VALUES (?, ?, ?)`, run.ID, i, line); err != nil {
			return fmt.Errorf("failed to insert summary line: %w", err)
		}
	}
	for i, key := range run.Artifacts {
		if _, err := tx.ExecContext(ctx, `INSERT INTO run_artifacts (run_id, position, artifact_key) VALUES (?, ?, ?)`, run.ID, i, key); err != nil {
			return fmt.Errorf("failed to insert artifact: %w", err)
		}
	}
	return nil
}

// loadDetails runs after the parent rows are closed: the store may hold a
// single connection.
func (r *RunRepository) loadDetails(ctx context.Context, run *domain.Run) error {
	var err error
	run.Summary, err = r.queryStrings(ctx, `SELECT line FROM run_summary_lines WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}
	run.Artifacts, err = r.queryStrings(ctx, `SELECT artifact_key FROM run_artifacts WHERE run_id = ? ORDER BY position`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load artifacts: %w", err)
	}
	return nil
}

func (r *RunRepository) queryStrings(ctx context.Context, query, id string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*domain.Run, error) {
	var (
		run                 domain.Run
		kind, status        string
		noise, dataExported int64
		errText, endedAt    sql.NullString
		startedAt           string
		durationMs          sql.NullInt64
	)
	if err := s.Scan(&run.ID, &kind, &run.Target, &run.Params.Seed, &noise, &run.Params.Points,
		&status, &dataExported, &errText, &startedAt, &endedAt, &durationMs); err != nil {
		return nil, err
	}
	run.Kind = domain.RunKind(kind)
	run.Status = domain.RunStatus(status)
	run.Params.Noise = noise != 0
	run.DataExported = dataExported != 0
	run.Error = errText.String

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("invalid started_at %q: %w", startedAt, err)
	}
	if endedAt.Valid {
		t, err := time.Parse(timeLayout, endedAt.String)
		if err != nil {
			return nil, fmt.Errorf("invalid ended_at %q: %w", endedAt.String, err)
		}
		run.EndedAt = &t
	}
	run.DurationMs = util.Int64Ptr(durationMs)
	return &run, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timeLayout), Valid: true}
}
