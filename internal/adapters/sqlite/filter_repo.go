package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

// FilterRepository implements secondary.FilterRepository with SQLite.
type FilterRepository struct {
	db *sql.DB
}

// NewFilterRepository creates a new SQLite filter repository.
func NewFilterRepository(db *sql.DB) *FilterRepository {
	return &FilterRepository{db: db}
}

// Create persists a filter. A zero ID lets SQLite assign one, which is
// written back to f.
func (r *FilterRepository) Create(ctx context.Context, f *secondary.FilterRecord) error {
	row := fields.Values(f)
	if f.ID == 0 {
		delete(row, "filter_id")
	}

	q := conn(ctx, r.db)
	if err := insertRow(ctx, q, fields.TableCustomFilters, row); err != nil {
		return fmt.Errorf("failed to create filter: %w", err)
	}
	if f.ID == 0 {
		if err := q.QueryRowContext(ctx, "SELECT last_insert_rowid()").Scan(&f.ID); err != nil {
			return fmt.Errorf("failed to read filter id: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a filter by its ID.
func (r *FilterRepository) GetByID(ctx context.Context, id int) (*secondary.FilterRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		selectSQL(fields.TableCustomFilters)+" WHERE filter_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get filter: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan filter: %w", err)
	}
	if len(found) == 0 {
		return nil, errs.NotFoundf("filter %d", id)
	}

	record := &secondary.FilterRecord{}
	if err := fill(record, found[0]); err != nil {
		return nil, fmt.Errorf("failed to read filter: %w", err)
	}
	return record, nil
}

// List retrieves all filters ordered by name.
func (r *FilterRepository) List(ctx context.Context) ([]*secondary.FilterRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		selectSQL(fields.TableCustomFilters)+" ORDER BY filter_name, filter_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan filters: %w", err)
	}

	filters := make([]*secondary.FilterRecord, 0, len(found))
	for _, row := range found {
		record := &secondary.FilterRecord{}
		if err := fill(record, row); err != nil {
			return nil, fmt.Errorf("failed to read filter: %w", err)
		}
		filters = append(filters, record)
	}
	return filters, nil
}

// Delete removes a filter.
func (r *FilterRepository) Delete(ctx context.Context, id int) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM "Custom_Filters" WHERE filter_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete filter: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFoundf("filter %d", id)
	}
	return nil
}

var _ secondary.FilterRepository = (*FilterRepository)(nil)
