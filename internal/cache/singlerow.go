package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by GetRow when the store holds no row.
// Callers must treat it as a failed precondition, never substitute a
// default value.
var ErrNotFound = errors.New("cache: no row")

// Table describes how an entity maps onto its single-row table.
type Table[T any] struct {
	// Name is the table name.
	Name string
	// Columns lists the column names. Columns[0] is the key column.
	Columns []string
	// Values returns the column values of row, in Columns order.
	Values func(row T) []any
	// Scan reads one row's columns, in Columns order.
	Scan func(scan func(dest ...any) error) (T, error)
}

// Store persists at most one row of T. Insert uses IGNORE conflict
// semantics, so an existing row always wins over a new insert; Update
// replaces the row in place and never creates one.
type Store[T any] struct {
	db  *sql.DB
	tbl Table[T]

	insertStmt string
	updateStmt string
	deleteStmt string
	selectStmt string
}

// NewStore builds a Store over db for the given table descriptor.
func NewStore[T any](db *sql.DB, tbl Table[T]) *Store[T] {
	cols := strings.Join(tbl.Columns, ", ")
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(tbl.Columns)), ", ")

	sets := make([]string, 0, len(tbl.Columns)-1)
	for _, c := range tbl.Columns[1:] {
		sets = append(sets, c+" = ?")
	}

	return &Store[T]{
		db:  db,
		tbl: tbl,
		// Guarded by table emptiness, not just key conflict: an insert
		// onto any non-empty store is a silent no-op, so the store can
		// never grow past one row.
		insertStmt: fmt.Sprintf(
			"INSERT OR IGNORE INTO %s (%s) SELECT %s WHERE NOT EXISTS (SELECT 1 FROM %s)",
			tbl.Name, cols, marks, tbl.Name),
		updateStmt: fmt.Sprintf(
			"UPDATE %s SET %s WHERE %s = ?", tbl.Name, strings.Join(sets, ", "), tbl.Columns[0]),
		deleteStmt: fmt.Sprintf("DELETE FROM %s", tbl.Name),
		selectStmt: fmt.Sprintf("SELECT %s FROM %s LIMIT 1", cols, tbl.Name),
	}
}

// Insert stores row unless a row with the same key already exists, in
// which case it is a silent no-op.
func (s *Store[T]) Insert(ctx context.Context, row T) error {
	if _, err := s.db.ExecContext(ctx, s.insertStmt, s.tbl.Values(row)...); err != nil {
		return fmt.Errorf("insert %s: %w", s.tbl.Name, err)
	}
	return nil
}

// Update replaces the row with the same key. When no such row exists
// nothing happens; Update never creates a row.
func (s *Store[T]) Update(ctx context.Context, row T) error {
	vals := s.tbl.Values(row)
	// non-key columns first, key as the WHERE argument
	args := append(append([]any{}, vals[1:]...), vals[0])
	if _, err := s.db.ExecContext(ctx, s.updateStmt, args...); err != nil {
		return fmt.Errorf("update %s: %w", s.tbl.Name, err)
	}
	return nil
}

// DeleteAll removes every row. Idempotent.
func (s *Store[T]) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.deleteStmt); err != nil {
		return fmt.Errorf("delete %s: %w", s.tbl.Name, err)
	}
	return nil
}

// GetRow returns the stored row, or ErrNotFound when the store is
// empty.
func (s *Store[T]) GetRow(ctx context.Context) (T, error) {
	r := s.db.QueryRowContext(ctx, s.selectStmt)
	row, err := s.tbl.Scan(r.Scan)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("read %s: %w", s.tbl.Name, err)
	}
	return row, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
