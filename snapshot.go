package spellcsv

import (
	"context"
	"database/sql"
	"fmt"

	// SQLite driver used for snapshot persistence between runs.
	_ "modernc.org/sqlite"
)

// sqliteDriverName is the database/sql driver name registered by
// modernc.org/sqlite.
const sqliteDriverName = "sqlite"

// Snapshot DDL. The auto_index table keeps the assigned index explicit so
// that reloading reconstructs the exact encounter order; id_count carries
// the per-identifier spell tallies.
const (
	createAutoIndexTable = `CREATE TABLE IF NOT EXISTS auto_index (idx INTEGER PRIMARY KEY, id INTEGER NOT NULL UNIQUE)`
	createIDCountTable   = `CREATE TABLE IF NOT EXISTS id_count (id INTEGER PRIMARY KEY, n INTEGER NOT NULL)`
)

// SaveSnapshot persists the AutoIndex assignment and the identifier tallies
// to a SQLite database at path, replacing any previous snapshot. The index
// order is stored explicitly so a later run can extend the mapping without
// disturbing already-assigned integers.
func SaveSnapshot(ctx context.Context, path string, index *AutoIndex[uint64], counter IDCounter) (err error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot database %s: %w", path, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot database: %w", closeErr)
		}
	}()

	for _, ddl := range []string{createAutoIndexTable, createIDCountTable} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create snapshot table: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // Ignore rollback error; the original error wins
		}
	}()

	for _, table := range []string{"auto_index", "id_count"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear snapshot table %s: %w", table, err)
		}
	}

	insertIndex, err := tx.PrepareContext(ctx, `INSERT INTO auto_index (idx, id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare index insert: %w", err)
	}
	defer func() {
		_ = insertIndex.Close() // Ignore close error during statement cleanup
	}()

	if index != nil {
		for i, key := range index.Keys() {
			if _, err = insertIndex.ExecContext(ctx, i+1, int64(key)); err != nil {
				return fmt.Errorf("failed to insert index entry %d: %w", i+1, err)
			}
		}
	}

	insertCount, err := tx.PrepareContext(ctx, `INSERT INTO id_count (id, n) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare count insert: %w", err)
	}
	defer func() {
		_ = insertCount.Close() // Ignore close error during statement cleanup
	}()

	for id, n := range counter {
		if _, err = insertCount.ExecContext(ctx, int64(id), int64(n)); err != nil {
			return fmt.Errorf("failed to insert count for id %d: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadAutoIndex reconstructs an AutoIndex from a snapshot database,
// replaying the stored keys in assigned-index order so every key keeps its
// original integer. A later run may keep assigning new indexes on top.
func LoadAutoIndex(ctx context.Context, path string, width IntWidth) (index *AutoIndex[uint64], err error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database %s: %w", path, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot database: %w", closeErr)
		}
	}()

	rows, err := db.QueryContext(ctx, `SELECT id FROM auto_index ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto_index: %w", err)
	}
	defer func() {
		_ = rows.Close() // Ignore close error after full iteration
	}()

	index = NewAutoIndex[uint64](width)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan auto_index row: %w", err)
		}
		if _, err = index.Index(uint64(id)); err != nil {
			return nil, err
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auto_index rows: %w", err)
	}
	return index, nil
}

// LoadIDCounter reconstructs the identifier tallies from a snapshot database.
func LoadIDCounter(ctx context.Context, path string) (counter IDCounter, err error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database %s: %w", path, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close snapshot database: %w", closeErr)
		}
	}()

	rows, err := db.QueryContext(ctx, `SELECT id, n FROM id_count`)
	if err != nil {
		return nil, fmt.Errorf("failed to query id_count: %w", err)
	}
	defer func() {
		_ = rows.Close() // Ignore close error after full iteration
	}()

	counter = NewIDCounter()
	for rows.Next() {
		var id, n int64
		if err = rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("failed to scan id_count row: %w", err)
		}
		counter[uint64(id)] = uint64(n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate id_count rows: %w", err)
	}
	return counter, nil
}
