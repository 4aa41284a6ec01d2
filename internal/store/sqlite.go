// Package store persists symbol mappings across process lifetimes so
// repeated runs against a growing codebase reuse previously generated
// names instead of re-deriving them.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/omarish/symbol-mutator/internal/mutate"
)

// SQLiteStore implements mutate.Store backed by a single-file sqlite
// database, using the cgo-free modernc.org/sqlite driver so the binary
// stays a static, portable single executable.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates (if absent) and opens a mapping database at path,
// ensuring its schema exists.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open mapping store %q: %w", path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS mappings (
	seed     INTEGER NOT NULL,
	theme    TEXT    NOT NULL,
	original TEXT    NOT NULL,
	new_name TEXT    NOT NULL,
	kind     INTEGER NOT NULL,
	PRIMARY KEY (seed, theme, original)
)`)
	if err != nil {
		return fmt.Errorf("migrate mapping store schema: %w", err)
	}
	return nil
}

// Lookup implements mutate.Store.
func (s *SQLiteStore) Lookup(ctx context.Context, seed int64, theme mutate.Theme, original string) (string, mutate.Kind, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT new_name, kind FROM mappings WHERE seed = ? AND theme = ? AND original = ?`,
		seed, string(theme), original)

	var newName string
	var kind int
	if err := row.Scan(&newName, &kind); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, false, nil
		}
		return "", 0, false, fmt.Errorf("lookup mapping for %q: %w", original, err)
	}
	return newName, mutate.Kind(kind), true, nil
}

// Save implements mutate.Store.
func (s *SQLiteStore) Save(ctx context.Context, seed int64, theme mutate.Theme, original, newName string, kind mutate.Kind) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mappings (seed, theme, original, new_name, kind) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (seed, theme, original) DO UPDATE SET new_name = excluded.new_name, kind = excluded.kind`,
		seed, string(theme), original, newName, int(kind))
	if err != nil {
		return fmt.Errorf("save mapping for %q: %w", original, err)
	}
	return nil
}

// Entries returns every persisted mapping row for the given (seed,
// theme) pair, sorted by original name, for use by the report command.
func (s *SQLiteStore) Entries(ctx context.Context, seed int64, theme mutate.Theme) ([]mutate.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT original, new_name, kind FROM mappings WHERE seed = ? AND theme = ? ORDER BY original`,
		seed, string(theme))
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()

	var out []mutate.Entry
	for rows.Next() {
		var e mutate.Entry
		var kind int
		if err := rows.Scan(&e.Original, &e.New, &kind); err != nil {
			return nil, fmt.Errorf("scan mapping row: %w", err)
		}
		e.Kind = mutate.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
