package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/arda/internal/ports/secondary"
)

// PathRepository implements secondary.PathRepository with SQLite.
type PathRepository struct {
	db *sql.DB
}

// NewPathRepository creates a new SQLite path repository.
func NewPathRepository(db *sql.DB) *PathRepository {
	return &PathRepository{db: db}
}

// Add attaches a path. Duplicates are kept.
func (r *PathRepository) Add(ctx context.Context, docID int, fullPath string) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO "Doc_Paths" (doc_id, full_path) VALUES (?, ?)`, docID, fullPath)
	if err != nil {
		return fmt.Errorf("failed to add path: %w", err)
	}
	return nil
}

// Remove detaches every copy of a path.
func (r *PathRepository) Remove(ctx context.Context, docID int, fullPath string) (int64, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`DELETE FROM "Doc_Paths" WHERE doc_id = ? AND full_path = ?`, docID, fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to remove path: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// ListByDocument returns a document's paths in insertion order.
func (r *PathRepository) ListByDocument(ctx context.Context, docID int) ([]string, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT full_path FROM "Doc_Paths" WHERE doc_id = ? ORDER BY rowid`, docID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

var _ secondary.PathRepository = (*PathRepository)(nil)
