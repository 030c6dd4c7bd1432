package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/arda/internal/ports/secondary"
)

// MembershipRepository implements secondary.MembershipRepository with SQLite.
type MembershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new SQLite membership repository.
func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Add inserts a membership row.
func (r *MembershipRepository) Add(ctx context.Context, docID, projID int) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO "Doc_Proj" (doc_id, proj_id) VALUES (?, ?)`, docID, projID)
	if err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// Remove deletes every row for the pair.
func (r *MembershipRepository) Remove(ctx context.Context, docID, projID int) (int64, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM "Doc_Proj" WHERE doc_id = ? AND proj_id = ?`, docID, projID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove membership: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// DocsIn returns the distinct documents in any of projIDs.
func (r *MembershipRepository) DocsIn(ctx context.Context, projIDs []int) ([]int, error) {
	if len(projIDs) == 0 {
		return nil, nil
	}
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT DISTINCT doc_id FROM "Doc_Proj" WHERE proj_id IN (`+placeholders(len(projIDs))+`) ORDER BY doc_id`,
		intArgs(projIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list project documents: %w", err)
	}
	ids, err := scanInts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project documents: %w", err)
	}
	return ids, nil
}

// ProjectsOf returns the distinct projects a document belongs to.
func (r *MembershipRepository) ProjectsOf(ctx context.Context, docID int) ([]int, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT DISTINCT proj_id FROM "Doc_Proj" WHERE doc_id = ? ORDER BY proj_id`, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document projects: %w", err)
	}
	ids, err := scanInts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan document projects: %w", err)
	}
	return ids, nil
}

var _ secondary.MembershipRepository = (*MembershipRepository)(nil)
