package primary

import "context"

// ProjectService defines the primary port for the project forest.
type ProjectService interface {
	// ChildrenOf returns descendants of projID down to depth generations.
	ChildrenOf(ctx context.Context, projID, depth int) ([]int, error)

	// DocsIn returns the distinct documents in any of projIDs, optionally
	// including every descendant project.
	DocsIn(ctx context.Context, projIDs []int, cascade bool) ([]int, error)

	// FullPath joins the names from the top-level ancestor down to projID,
	// dropping the top ignoreTopN segments.
	FullPath(ctx context.Context, projID, ignoreTopN int, delimiter string) (string, error)

	// Levels returns the depth of every project, top level being 0.
	Levels(ctx context.Context) (map[int]int, error)

	// Delete removes a project. childrenAction must be "reassign".
	Delete(ctx context.Context, projID int, childrenAction string) error

	// AddRemoveMembership adds or removes a document from a project.
	AddRemoveMembership(ctx context.Context, docID, projID int, action string) error

	// ListProjects returns every project ordered by id.
	ListProjects(ctx context.Context) ([]*Project, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projID int) (*Project, error)

	// Move reparents a project.
	Move(ctx context.Context, projID, newParentID int) error

	// SetNote stores a per-project note on a document.
	SetNote(ctx context.Context, projID, docID int, notes string) error

	// Notes lists a project's notes.
	Notes(ctx context.Context, projID int) ([]*ProjectNote, error)
}

// Project represents a project at the port boundary.
type Project struct {
	ID            int
	Text          string
	ParentID      int
	Path          string
	Description   string
	ExpandDefault bool
	BibBuilt      float64
	BibPaths      []string
}

// ProjectNote represents one note a project keeps on a document.
type ProjectNote struct {
	ProjID int
	DocID  int
	Notes  string
}
