package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, p *secondary.ProjectRecord) error {
	if err := insertRow(ctx, conn(ctx, r.db), fields.TableProjects, fields.Values(p)); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id int) (*secondary.ProjectRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		selectSQL(fields.TableProjects)+" WHERE proj_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	if len(found) == 0 {
		return nil, errs.NotFoundf("project %d", id)
	}

	record := &secondary.ProjectRecord{}
	if err := fill(record, found[0]); err != nil {
		return nil, fmt.Errorf("failed to read project %d: %w", id, err)
	}
	return record, nil
}

// Exists reports whether a project exists.
func (r *ProjectRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM "Projects" WHERE proj_id = ?`, id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}
	return count > 0, nil
}

// List retrieves all projects ordered by ID.
func (r *ProjectRepository) List(ctx context.Context) ([]*secondary.ProjectRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, selectSQL(fields.TableProjects)+" ORDER BY proj_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan projects: %w", err)
	}

	projects := make([]*secondary.ProjectRecord, 0, len(found))
	for _, row := range found {
		record := &secondary.ProjectRecord{}
		if err := fill(record, row); err != nil {
			return nil, fmt.Errorf("failed to read project: %w", err)
		}
		projects = append(projects, record)
	}
	return projects, nil
}

// SetParent moves a project under a new parent.
func (r *ProjectRepository) SetParent(ctx context.Context, id, parentID int) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE "Projects" SET parent_id = ? WHERE proj_id = ?`, parentID, id)
	if err != nil {
		return fmt.Errorf("failed to move project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFoundf("project %d", id)
	}
	return nil
}

// ReparentChildren moves every direct child of fromID under toID.
func (r *ProjectRepository) ReparentChildren(ctx context.Context, fromID, toID int) (int64, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE "Projects" SET parent_id = ? WHERE parent_id = ?`, toID, fromID)
	if err != nil {
		return 0, fmt.Errorf("failed to reparent children: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Delete removes a project row.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM "Projects" WHERE proj_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errs.NotFoundf("project %d", id)
	}
	return nil
}

// MarkBibBuilt stamps the last export time.
func (r *ProjectRepository) MarkBibBuilt(ctx context.Context, id int, millis float64) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE "Projects" SET bib_built = ? WHERE proj_id = ?`, millis, id)
	if err != nil {
		return fmt.Errorf("failed to stamp bib_built: %w", err)
	}
	return nil
}

var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
