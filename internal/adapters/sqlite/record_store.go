package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/ports/secondary"
)

// RecordStore implements secondary.RecordStore with SQLite.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore creates a new SQLite record store.
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// FetchAll returns every row of table.
func (s *RecordStore) FetchAll(ctx context.Context, table string) ([]secondary.Row, error) {
	return s.Select(ctx, table, nil)
}

// Select returns the rows of table matching cond.
func (s *RecordStore) Select(ctx context.Context, table string, cond secondary.Cond) ([]secondary.Row, error) {
	if err := checkColumns(table, sortedKeys(cond)...); err != nil {
		return nil, err
	}

	where, args := whereClause(cond)
	rows, err := conn(ctx, s.db).QueryContext(ctx, selectSQL(table)+where+" ORDER BY rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", table, err)
	}

	out, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", table, err)
	}
	return out, nil
}

// Insert adds one row.
func (s *RecordStore) Insert(ctx context.Context, table string, row secondary.Row) error {
	if err := insertRow(ctx, conn(ctx, s.db), table, row); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

// Update assigns set on every row matching cond.
func (s *RecordStore) Update(ctx context.Context, table string, cond secondary.Cond, set secondary.Row) (int64, error) {
	if len(set) == 0 {
		return 0, nil
	}
	if err := checkColumns(table, append(sortedKeys(cond), sortedKeys(set)...)...); err != nil {
		return 0, err
	}

	assigns := make([]string, 0, len(set))
	var args []any
	for _, k := range sortedKeys(set) {
		assigns = append(assigns, quote(k)+" = ?")
		args = append(args, set[k])
	}
	where, whereArgs := whereClause(cond)
	args = append(args, whereArgs...)

	result, err := conn(ctx, s.db).ExecContext(ctx,
		"UPDATE "+quote(table)+" SET "+strings.Join(assigns, ", ")+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Delete removes every row matching cond.
func (s *RecordStore) Delete(ctx context.Context, table string, cond secondary.Cond) (int64, error) {
	if err := checkColumns(table, sortedKeys(cond)...); err != nil {
		return 0, err
	}

	where, args := whereClause(cond)
	result, err := conn(ctx, s.db).ExecContext(ctx, "DELETE FROM "+quote(table)+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// MaxID returns the largest value of column across tables.
func (s *RecordStore) MaxID(ctx context.Context, column string, tables ...string) (int, error) {
	if len(tables) == 0 {
		return 0, errs.Preconditionf("MaxID needs at least one table")
	}

	parts := make([]string, len(tables))
	for i, t := range tables {
		if err := checkColumns(t, column); err != nil {
			return 0, err
		}
		parts[i] = fmt.Sprintf("SELECT MAX(%s) AS m FROM %s", quote(column), quote(t))
	}

	var maxID int
	err := conn(ctx, s.db).QueryRowContext(ctx,
		"SELECT COALESCE(MAX(m), 0) FROM ("+strings.Join(parts, " UNION ALL ")+")",
	).Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("failed to find max %s: %w", column, err)
	}
	return maxID, nil
}

var _ secondary.RecordStore = (*RecordStore)(nil)
