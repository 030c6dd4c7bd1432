package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

// ContributorRepository implements secondary.ContributorRepository with SQLite.
type ContributorRepository struct {
	db *sql.DB
}

// NewContributorRepository creates a new SQLite contributor repository.
func NewContributorRepository(db *sql.DB) *ContributorRepository {
	return &ContributorRepository{db: db}
}

// Create persists a contributor row.
func (r *ContributorRepository) Create(ctx context.Context, c *secondary.ContributorRecord) error {
	if err := insertRow(ctx, conn(ctx, r.db), fields.TableDocAuth, fields.Values(c)); err != nil {
		return fmt.Errorf("failed to create contributor: %w", err)
	}
	return nil
}

// ListByDocument retrieves a document's contributors in order.
func (r *ContributorRepository) ListByDocument(ctx context.Context, docID int, role string) ([]*secondary.ContributorRecord, error) {
	q := selectSQL(fields.TableDocAuth) + " WHERE doc_id = ?"
	args := []any{docID}
	if role != "" {
		q += " AND contribution = ?"
		args = append(args, role)
	}
	q += " ORDER BY contribution, contribution_order, rowid"

	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan contributors: %w", err)
	}

	out := make([]*secondary.ContributorRecord, 0, len(found))
	for _, row := range found {
		record := &secondary.ContributorRecord{}
		if err := fill(record, row); err != nil {
			return nil, fmt.Errorf("failed to read contributor: %w", err)
		}
		out = append(out, record)
	}
	return out, nil
}

// DeleteByRole removes a document's contributors of one role.
func (r *ContributorRepository) DeleteByRole(ctx context.Context, docID int, role string) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM "Doc_Auth" WHERE doc_id = ? AND contribution = ?`, docID, role)
	if err != nil {
		return fmt.Errorf("failed to delete contributors: %w", err)
	}
	return nil
}

var _ secondary.ContributorRepository = (*ContributorRepository)(nil)
