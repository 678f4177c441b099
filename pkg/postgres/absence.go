package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// GetAbsencesOverlapping retrieves absences that overlap the date range
func (d *DB) GetAbsencesOverlapping(ctx context.Context, start, end time.Time) ([]db.Absence, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, person_id, start_date, end_date, replacement_activity
		FROM absence
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping absences: %w", err)
	}
	defer rows.Close()

	return scanAbsences(rows)
}

// InsertAbsences inserts absence records into the database
func (d *DB) InsertAbsences(absences []db.Absence) error {
	if len(absences) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range absences {
		_, err := tx.Exec(ctx, `
			INSERT INTO absence (id, person_id, start_date, end_date, replacement_activity)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.PersonID, a.StartDate, a.EndDate, a.ReplacementActivity)
		if err != nil {
			return fmt.Errorf("failed to insert absence: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// scanAbsences reads absence rows into records.
func scanAbsences(rows pgx.Rows) ([]db.Absence, error) {
	var absences []db.Absence
	for rows.Next() {
		var a db.Absence
		if err := rows.Scan(&a.ID, &a.PersonID, &a.StartDate, &a.EndDate, &a.ReplacementActivity); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating absences: %w", err)
	}

	return absences, nil
}
