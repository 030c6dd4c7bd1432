// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

type txKey struct{}

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db outside one.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// Transactor implements secondary.Transactor with SQLite transactions.
type Transactor struct {
	db *sql.DB
}

// NewTransactor creates a new SQLite transactor.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn in a transaction, committing when it returns nil.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ secondary.Transactor = (*Transactor)(nil)

// quote returns a double-quoted SQL identifier.
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// checkColumns refuses a table or column the registry does not know.
func checkColumns(table string, columns ...string) error {
	if !fields.KnownTable(table) {
		return errs.Preconditionf("unknown table %q", table)
	}
	for _, c := range columns {
		if !fields.IsColumn(table, c) {
			return errs.Preconditionf("unknown column %q in %s", c, table)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// whereClause renders cond as " WHERE a = ? AND b IS NULL". An empty cond
// renders as "".
func whereClause(cond secondary.Cond) (string, []any) {
	if len(cond) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(cond))
	var args []any
	for _, k := range sortedKeys(cond) {
		if cond[k] == nil {
			parts = append(parts, quote(k)+" IS NULL")
			continue
		}
		parts = append(parts, quote(k)+" = ?")
		args = append(args, cond[k])
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func selectSQL(table string) string {
	cols := fields.Columns(table)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + quote(table)
}

func insertRow(ctx context.Context, q querier, table string, row secondary.Row) error {
	keys := sortedKeys(row)
	if err := checkColumns(table, keys...); err != nil {
		return err
	}
	if len(keys) == 0 {
		_, err := q.ExecContext(ctx, "INSERT INTO "+quote(table)+" DEFAULT VALUES")
		return err
	}

	cols := make([]string, len(keys))
	marks := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		cols[i] = quote(k)
		marks[i] = "?"
		args[i] = row[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

// scanRows reads every row into column maps. TEXT comes back as string,
// INTEGER as int64 and REAL as float64.
func scanRows(rows *sql.Rows) ([]secondary.Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []secondary.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(secondary.Row, len(cols))
		for i, c := range cols {
			if b, ok := values[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// fill assigns every column of row onto the tagged record rec.
func fill(rec any, row secondary.Row) error {
	for k, v := range row {
		if err := fields.Assign(rec, k, v); err != nil {
			return err
		}
	}
	return nil
}

func scanInts(rows *sql.Rows) ([]int, error) {
	defer rows.Close()
	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func intArgs(ids []int) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
