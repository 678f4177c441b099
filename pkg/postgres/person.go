package postgres

import (
	"context"
	"fmt"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// GetPeople retrieves all person records
func (d *DB) GetPeople(ctx context.Context) ([]db.Person, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, first_name, last_name, kind, pgy_level, role, active
		FROM person
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	var people []db.Person
	for rows.Next() {
		var p db.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Kind, &p.PGYLevel, &p.Role, &p.Active); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return people, nil
}

// UpsertPeople inserts person records, updating existing rows by id
func (d *DB) UpsertPeople(people []db.Person) error {
	if len(people) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range people {
		_, err := tx.Exec(ctx, `
			INSERT INTO person (id, first_name, last_name, kind, pgy_level, role, active)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				kind = EXCLUDED.kind,
				pgy_level = EXCLUDED.pgy_level,
				role = EXCLUDED.role,
				active = EXCLUDED.active
		`, p.ID, p.FirstName, p.LastName, p.Kind, p.PGYLevel, p.Role, p.Active)
		if err != nil {
			return fmt.Errorf("failed to upsert person %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
