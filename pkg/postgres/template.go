package postgres

import (
	"context"
	"fmt"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// GetRotationTemplates retrieves all rotation template records
func (d *DB) GetRotationTemplates(ctx context.Context) ([]db.RotationTemplate, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, requires_procedure_credential
		FROM rotation_template
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rotation templates: %w", err)
	}
	defer rows.Close()

	var templates []db.RotationTemplate
	for rows.Next() {
		var t db.RotationTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.RequiresProcedureCredential); err != nil {
			return nil, fmt.Errorf("failed to scan rotation template: %w", err)
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rotation templates: %w", err)
	}

	return templates, nil
}

// UpsertRotationTemplates inserts template records, updating existing rows by id
func (d *DB) UpsertRotationTemplates(templates []db.RotationTemplate) error {
	if len(templates) == 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range templates {
		_, err := tx.Exec(ctx, `
			INSERT INTO rotation_template (id, name, requires_procedure_credential)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				requires_procedure_credential = EXCLUDED.requires_procedure_credential
		`, t.ID, t.Name, t.RequiresProcedureCredential)
		if err != nil {
			return fmt.Errorf("failed to upsert rotation template %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
