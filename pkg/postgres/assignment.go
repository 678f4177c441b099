package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// GetAssignmentsByRun retrieves all assignment records for a schedule run
func (d *DB) GetAssignmentsByRun(ctx context.Context, runID string) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, person_id, block_id, rotation_template_id, role
		FROM assignment
		WHERE run_id = $1
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for run %s: %w", runID, err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// GetAssignmentsBetween retrieves assignments whose blocks fall in the
// inclusive date range, across all runs
func (d *DB) GetAssignmentsBetween(ctx context.Context, start, end time.Time) ([]db.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.id, a.run_id, a.person_id, a.block_id, a.rotation_template_id, a.role
		FROM assignment a
		JOIN block b ON b.id = a.block_id
		WHERE b.block_date BETWEEN $1 AND $2
		ORDER BY b.block_date, b.session, a.id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments between dates: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// InsertAssignments inserts assignment records into the database
func (d *DB) InsertAssignments(assignments []db.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		var templateID *string
		if a.RotationTemplateID != "" {
			templateID = &a.RotationTemplateID
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO assignment (id, run_id, person_id, block_id, rotation_template_id, role)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.ID, a.RunID, a.PersonID, a.BlockID, templateID, a.Role)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanAssignments reads assignment rows into records.
func scanAssignments(rows pgx.Rows) ([]db.Assignment, error) {
	var assignments []db.Assignment
	for rows.Next() {
		var a db.Assignment
		var templateID *string
		if err := rows.Scan(&a.ID, &a.RunID, &a.PersonID, &a.BlockID, &templateID, &a.Role); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if templateID != nil {
			a.RotationTemplateID = *templateID
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}
