package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"
)

// flushTimeLayout is the layout of flushes.flushed_at. It sorts lexically.
const flushTimeLayout = time.RFC3339Nano

// rewriteSnapshot replaces every row of table with rows and stamps name in
// the flushes table, all inside one transaction. A failure leaves the
// previous snapshot intact.
func rewriteSnapshot(ctx context.Context, db *DB, table, name, insert string, rows iter.Seq[[]any]) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := markFlushed(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

// markFlushed records that the named store was written inside tx.
func markFlushed(ctx context.Context, tx *sql.Tx, name string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO flushes (name, flushed_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET flushed_at = excluded.flushed_at
	`, name, time.Now().UTC().Format(flushTimeLayout))
	return err
}

func parseFlushTime(value string) (time.Time, error) {
	t, err := time.Parse(flushTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse flushed_at: %w", err)
	}
	return t, nil
}
