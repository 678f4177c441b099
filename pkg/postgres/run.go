package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// InsertScheduleRun inserts a new schedule run record
func (d *DB) InsertScheduleRun(run *db.ScheduleRun) error {
	_, err := d.pool.Exec(context.Background(), `
		INSERT INTO schedule_run (id, algorithm, status, horizon_start, horizon_end,
			total_assigned, total_blocks, violation_count, runtime_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, run.ID, run.Algorithm, run.Status, run.HorizonStart, run.HorizonEnd,
		run.TotalAssigned, run.TotalBlocks, run.ViolationCount, run.RuntimeMS)
	if err != nil {
		return fmt.Errorf("failed to insert schedule run: %w", err)
	}
	return nil
}

// GetScheduleRuns retrieves all schedule run records, newest first
func (d *DB) GetScheduleRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, algorithm, status, horizon_start, horizon_end,
			total_assigned, total_blocks, violation_count, runtime_ms, created_at
		FROM schedule_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []db.ScheduleRun
	for rows.Next() {
		var r db.ScheduleRun
		if err := rows.Scan(&r.ID, &r.Algorithm, &r.Status, &r.HorizonStart, &r.HorizonEnd,
			&r.TotalAssigned, &r.TotalBlocks, &r.ViolationCount, &r.RuntimeMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}

// GetScheduleRun retrieves a single schedule run record by id
func (d *DB) GetScheduleRun(ctx context.Context, runID string) (*db.ScheduleRun, error) {
	var r db.ScheduleRun
	err := d.pool.QueryRow(ctx, `
		SELECT id, algorithm, status, horizon_start, horizon_end,
			total_assigned, total_blocks, violation_count, runtime_ms, created_at
		FROM schedule_run
		WHERE id = $1
	`, runID).Scan(&r.ID, &r.Algorithm, &r.Status, &r.HorizonStart, &r.HorizonEnd,
		&r.TotalAssigned, &r.TotalBlocks, &r.ViolationCount, &r.RuntimeMS, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule run %s: %w", runID, err)
	}

	return &r, nil
}

// WithRunLock executes fn while holding the advisory lock for the horizon.
// The lock is transaction scoped, so it is released when fn returns even if
// the process dies mid-run. Concurrent runs over the same horizon serialize;
// runs over different horizons proceed in parallel.
func (d *DB) WithRunLock(ctx context.Context, start, end time.Time, fn func(context.Context) error) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin run lock transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, runLockKey(start, end)); err != nil {
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release run lock: %w", err)
	}

	return nil
}

// runLockKey derives a stable 64-bit advisory lock key from the horizon dates.
func runLockKey(start, end time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "schedule-run/%s/%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	return int64(h.Sum64())
}
