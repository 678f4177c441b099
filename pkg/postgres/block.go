package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub018/pkg/db"
)

// EnsureBlock inserts the block if no row exists for its (date, session) and
// returns the stored row either way. The block number written by the first
// insert is never changed by later calls.
func (d *DB) EnsureBlock(ctx context.Context, block db.Block) (db.Block, error) {
	var stored db.Block
	err := d.pool.QueryRow(ctx, `
		INSERT INTO block (id, block_date, session, block_number, is_weekend)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (block_date, session) DO UPDATE SET session = EXCLUDED.session
		RETURNING id, block_date, session, block_number, is_weekend
	`, block.ID, block.Date, block.Session, block.BlockNumber, block.IsWeekend).
		Scan(&stored.ID, &stored.Date, &stored.Session, &stored.BlockNumber, &stored.IsWeekend)
	if err != nil {
		return db.Block{}, fmt.Errorf("failed to ensure block for %s %s: %w",
			block.Date.Format("2006-01-02"), block.Session, err)
	}

	return stored, nil
}

// GetBlocksBetween retrieves blocks with dates in the inclusive range
func (d *DB) GetBlocksBetween(ctx context.Context, start, end time.Time) ([]db.Block, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, block_date, session, block_number, is_weekend
		FROM block
		WHERE block_date BETWEEN $1 AND $2
		ORDER BY block_date, session
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()

	var blocks []db.Block
	for rows.Next() {
		var b db.Block
		if err := rows.Scan(&b.ID, &b.Date, &b.Session, &b.BlockNumber, &b.IsWeekend); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		blocks = append(blocks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blocks: %w", err)
	}

	return blocks, nil
}
