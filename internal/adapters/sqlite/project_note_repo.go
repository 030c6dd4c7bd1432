package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

// ProjectNoteRepository implements secondary.ProjectNoteRepository with SQLite.
type ProjectNoteRepository struct {
	db *sql.DB
}

// NewProjectNoteRepository creates a new SQLite project note repository.
func NewProjectNoteRepository(db *sql.DB) *ProjectNoteRepository {
	return &ProjectNoteRepository{db: db}
}

// Set replaces the note for one project/document pair.
func (r *ProjectNoteRepository) Set(ctx context.Context, note *secondary.ProjectNoteRecord) error {
	q := conn(ctx, r.db)
	if _, err := q.ExecContext(ctx,
		`DELETE FROM "Proj_Notes" WHERE proj_id = ? AND doc_id = ?`, note.ProjID, note.DocID,
	); err != nil {
		return fmt.Errorf("failed to replace note: %w", err)
	}
	if err := insertRow(ctx, q, fields.TableProjNotes, fields.Values(note)); err != nil {
		return fmt.Errorf("failed to set note: %w", err)
	}
	return nil
}

// ListByProject returns a project's notes ordered by document.
func (r *ProjectNoteRepository) ListByProject(ctx context.Context, projID int) ([]*secondary.ProjectNoteRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		selectSQL(fields.TableProjNotes)+" WHERE proj_id = ? ORDER BY doc_id", projID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes: %w", err)
	}

	notes := make([]*secondary.ProjectNoteRecord, 0, len(found))
	for _, row := range found {
		record := &secondary.ProjectNoteRecord{}
		if err := fill(record, row); err != nil {
			return nil, fmt.Errorf("failed to read note: %w", err)
		}
		notes = append(notes, record)
	}
	return notes, nil
}

var _ secondary.ProjectNoteRepository = (*ProjectNoteRepository)(nil)
