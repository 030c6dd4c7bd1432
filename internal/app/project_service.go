package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/core/project"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	stores Stores
	log    *logging.Logger
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(stores Stores, log *logging.Logger) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		stores: stores,
		log:    log.With("service", "projects"),
	}
}

// loadForest reads every project into an in-memory forest.
func loadForest(ctx context.Context, projects secondary.ProjectRepository) (*project.Forest, error) {
	records, err := projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	nodes := make([]project.Node, len(records))
	for i, r := range records {
		nodes[i] = project.Node{ID: r.ID, ParentID: r.ParentID, Text: r.Text}
	}
	return project.NewForest(nodes), nil
}

// ChildrenOf returns descendants down to depth generations.
func (s *ProjectServiceImpl) ChildrenOf(ctx context.Context, projID, depth int) ([]int, error) {
	forest, err := loadForest(ctx, s.stores.Projects)
	if err != nil {
		return nil, err
	}
	return forest.ChildrenOf(projID, depth)
}

// DocsIn returns the distinct documents in any of the projects.
func (s *ProjectServiceImpl) DocsIn(ctx context.Context, projIDs []int, cascade bool) ([]int, error) {
	if cascade {
		forest, err := loadForest(ctx, s.stores.Projects)
		if err != nil {
			return nil, err
		}
		projIDs, err = forest.Expand(projIDs, project.CascadeDepth)
		if err != nil {
			return nil, err
		}
	}
	return s.stores.Memberships.DocsIn(ctx, projIDs)
}

// FullPath joins project names from the top-level ancestor down.
func (s *ProjectServiceImpl) FullPath(ctx context.Context, projID, ignoreTopN int, delimiter string) (string, error) {
	forest, err := loadForest(ctx, s.stores.Projects)
	if err != nil {
		return "", err
	}
	return forest.FullPath(projID, ignoreTopN, delimiter)
}

// Levels returns every project's depth.
func (s *ProjectServiceImpl) Levels(ctx context.Context) (map[int]int, error) {
	forest, err := loadForest(ctx, s.stores.Projects)
	if err != nil {
		return nil, err
	}
	levels, err := forest.Levels()
	if err != nil {
		s.log.Error("project hierarchy is corrupt", "error", err)
		return nil, err
	}
	return levels, nil
}

// Delete removes a project, handing its children, memberships and notes
// to its parent. For a top-level project that parent is the root (0), where
// the documents stay listed until removed.
func (s *ProjectServiceImpl) Delete(ctx context.Context, projID int, childrenAction string) error {
	return s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.stores.Projects.Exists(ctx, projID)
		if err != nil {
			return err
		}
		guard := project.CanDeleteProject(project.DeleteProjectContext{
			ProjID: projID,
			Exists: exists,
			Action: childrenAction,
		})
		if !guard.Allowed {
			return guard.Error()
		}

		p, err := s.stores.Projects.GetByID(ctx, projID)
		if err != nil {
			return err
		}

		moved, err := s.stores.Projects.ReparentChildren(ctx, projID, p.ParentID)
		if err != nil {
			return err
		}

		cond := secondary.Cond{"proj_id": projID}
		for _, table := range []string{fields.TableDocProj, fields.TableProjNotes} {
			if _, err := s.stores.Records.Update(ctx, table, cond, secondary.Row{"proj_id": p.ParentID}); err != nil {
				return fmt.Errorf("failed to hand over %s: %w", table, err)
			}
		}

		if err := s.stores.Projects.Delete(ctx, projID); err != nil {
			return err
		}

		s.log.Info("project deleted", "proj_id", projID, "children_moved", moved, "new_parent", p.ParentID)
		return nil
	})
}

// AddRemoveMembership adds or removes a document from a project.
func (s *ProjectServiceImpl) AddRemoveMembership(ctx context.Context, docID, projID int, action string) error {
	docExists, err := s.stores.Documents.Exists(ctx, docID)
	if err != nil {
		return err
	}
	projExists, err := s.stores.Projects.Exists(ctx, projID)
	if err != nil {
		return err
	}

	guard := project.CanChangeMembership(project.MembershipContext{
		DocID:      docID,
		DocExists:  docExists,
		ProjID:     projID,
		ProjExists: projExists,
		Action:     action,
	})
	if !guard.Allowed {
		return guard.Error()
	}

	if action == project.ActionAdd {
		return s.stores.Memberships.Add(ctx, docID, projID)
	}
	_, err = s.stores.Memberships.Remove(ctx, docID, projID)
	return err
}

// ListProjects returns every project.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	records, err := s.stores.Projects.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*primary.Project, len(records))
	for i, r := range records {
		out[i] = recordToProject(r)
	}
	return out, nil
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projID int) (*primary.Project, error) {
	r, err := s.stores.Projects.GetByID(ctx, projID)
	if err != nil {
		return nil, err
	}
	return recordToProject(r), nil
}

// Move reparents a project, refusing moves that would create a cycle.
func (s *ProjectServiceImpl) Move(ctx context.Context, projID, newParentID int) error {
	forest, err := loadForest(ctx, s.stores.Projects)
	if err != nil {
		return err
	}

	guard := project.CanMoveProject(project.MoveProjectContext{
		ProjID:       projID,
		Exists:       forest.Has(projID),
		NewParentID:  newParentID,
		ParentExists: forest.Has(newParentID),
		IsDescendant: forest.IsDescendant(projID, newParentID),
	})
	if !guard.Allowed {
		return guard.Error()
	}
	return s.stores.Projects.SetParent(ctx, projID, newParentID)
}

// SetNote stores a per-project note on a document.
func (s *ProjectServiceImpl) SetNote(ctx context.Context, projID, docID int, notes string) error {
	projExists, err := s.stores.Projects.Exists(ctx, projID)
	if err != nil {
		return err
	}
	if !projExists {
		return errs.NotFoundf("project %d", projID)
	}
	docExists, err := s.stores.Documents.Exists(ctx, docID)
	if err != nil {
		return err
	}
	if !docExists {
		return errs.NotFoundf("document %d", docID)
	}

	return s.stores.Notes.Set(ctx, &secondary.ProjectNoteRecord{ProjID: projID, DocID: docID, Notes: notes})
}

// Notes lists a project's notes.
func (s *ProjectServiceImpl) Notes(ctx context.Context, projID int) ([]*primary.ProjectNote, error) {
	records, err := s.stores.Notes.ListByProject(ctx, projID)
	if err != nil {
		return nil, err
	}
	out := make([]*primary.ProjectNote, len(records))
	for i, r := range records {
		out[i] = &primary.ProjectNote{ProjID: r.ProjID, DocID: r.DocID, Notes: r.Notes}
	}
	return out, nil
}

// Helper methods

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:            r.ID,
		Text:          r.Text,
		ParentID:      r.ParentID,
		Path:          r.Path,
		Description:   r.Description,
		ExpandDefault: r.ExpandDefault,
		BibBuilt:      r.BibBuilt,
		BibPaths:      splitBibPaths(r.BibPaths),
	}
}

// splitBibPaths parses the semicolon-delimited bib_paths column.
func splitBibPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ensure ProjectServiceImpl implements the interface.
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
