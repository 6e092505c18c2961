package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current History schema version. Bump this when the
// schema changes; an old database must be removed or undone first.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// SQLiteStore persists the History in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore initializes or connects to the history database.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (undo remaining operations with the old binary or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// Load reads the full History ordered by operation and record sequence.
func (s *SQLiteStore) Load(ctx context.Context) ([]Operation, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT o.id, o.started_at, m.source, m.destination, m.category, m.created_dir, m.moved_at
        FROM operations o
        JOIN move_records m ON m.operation_id = o.id
        ORDER BY o.seq, m.seq`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var (
			opID       string
			startedRaw string
			source     string
			dest       string
			category   string
			createdDir sql.NullString
			movedRaw   string
		)
		if err := rows.Scan(&opID, &startedRaw, &source, &dest, &category, &createdDir, &movedRaw); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}

		if len(ops) == 0 || ops[len(ops)-1].ID != opID {
			started, err := time.Parse(time.RFC3339Nano, startedRaw)
			if err != nil {
				return nil, fmt.Errorf("parse operation timestamp: %w", err)
			}
			ops = append(ops, Operation{ID: opID, StartedAt: started})
		}

		movedAt, err := time.Parse(time.RFC3339Nano, movedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse record timestamp: %w", err)
		}
		op := &ops[len(ops)-1]
		op.Records = append(op.Records, MoveRecord{
			Source:      source,
			Destination: dest,
			Category:    category,
			CreatedDir:  createdDir.String,
			MovedAt:     movedAt,
		})
	}
	return ops, rows.Err()
}

// Save rewrites the full History in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, ops []Operation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM move_records`); err != nil {
		return fmt.Errorf("clear move records: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM operations`); err != nil {
		return fmt.Errorf("clear operations: %w", err)
	}

	for opSeq, op := range ops {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO operations (id, seq, started_at) VALUES (?, ?, ?)`,
			op.ID, opSeq, op.StartedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("insert operation: %w", err)
		}
		for recSeq, rec := range op.Records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO move_records (operation_id, seq, source, destination, category, created_dir, moved_at)
                 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				op.ID, recSeq, rec.Source, rec.Destination, rec.Category,
				nullableString(rec.CreatedDir), rec.MovedAt.UTC().Format(time.RFC3339Nano),
			); err != nil {
				return fmt.Errorf("insert move record: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
