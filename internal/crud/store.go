package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"sqlast/internal/db"
)

// Store persists per-file references in the SQLite metadata store so a
// matrix can be built across runs.
type Store struct {
	writeDB *sql.DB
	readDB  *sql.DB
	log     *slog.Logger
}

// Open opens (creating if needed) the store at path and migrates it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	writeDB, readDB, err := db.OpenSQLitePair(ctx, path, 0)
	if err != nil {
		return nil, err
	}
	version, err := db.RunMigrations(ctx, writeDB)
	if err != nil {
		_ = readDB.Close()
		_ = writeDB.Close()
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("opened metadata store", "path", path, "schema_version", version)
	return NewStore(writeDB, readDB, logger), nil
}

// NewStore wraps already migrated pools.
func NewStore(writeDB, readDB *sql.DB, logger *slog.Logger) *Store {
	return &Store{writeDB: writeDB, readDB: readDB, log: logger}
}

// Close closes both pools.
func (s *Store) Close() error {
	return errors.Join(s.readDB.Close(), s.writeDB.Close())
}

// RecordFile replaces everything stored for path with refs.
func (s *Store) RecordFile(ctx context.Context, path string, statements int, refs []Reference) error {
	tx, err := s.writeDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var scriptID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO scripts (path, statements) VALUES (?, ?)
		ON CONFLICT (path) DO UPDATE SET
			statements = excluded.statements,
			recorded_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		RETURNING id`, path, statements).Scan(&scriptID)
	if err != nil {
		return fmt.Errorf("upsert script %s: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM object_references WHERE script_id = ?`, scriptID); err != nil {
		return fmt.Errorf("clear references of %s: %w", path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO object_references (script_id, object, operation, line, col)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare reference insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck

	for _, r := range refs {
		if _, err := stmt.ExecContext(ctx, scriptID, r.Object, r.Operation.String(), r.Line, r.Col); err != nil {
			return fmt.Errorf("insert reference %s %s: %w", r.Operation, r.Object, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record tx: %w", err)
	}
	s.log.Debug("recorded references", "path", path, "count", len(refs))
	return nil
}

// ListByObject returns every stored reference to object, compared case
// insensitively, ordered by file and position.
func (s *Store) ListByObject(ctx context.Context, object string) ([]Reference, error) {
	return s.query(ctx, `
		SELECT s.path, r.object, r.operation, r.line, r.col
		FROM object_references r
		JOIN scripts s ON s.id = r.script_id
		WHERE r.object = ?
		ORDER BY s.path, r.line, r.col`, object)
}

// Matrix builds the matrix over every stored file.
func (s *Store) Matrix(ctx context.Context) ([]Row, error) {
	refs, err := s.query(ctx, `
		SELECT s.path, r.object, r.operation, r.line, r.col
		FROM object_references r
		JOIN scripts s ON s.id = r.script_id
		ORDER BY s.path, r.line, r.col`)
	if err != nil {
		return nil, err
	}
	return Matrix(refs), nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Reference, error) {
	rows, err := s.readDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var refs []Reference
	for rows.Next() {
		var (
			r  Reference
			op string
		)
		if err := rows.Scan(&r.File, &r.Object, &op, &r.Line, &r.Col); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		if len(op) == 1 {
			r.Operation = Operation(op[0])
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}
