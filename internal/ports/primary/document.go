package primary

import "context"

// DocumentService defines the primary port for document and table operations.
type DocumentService interface {
	// Add inserts a record into table and returns the assigned id, if the
	// table assigns one, plus the supplied keys that matched no column.
	// An unknown table is a logged no-op.
	Add(ctx context.Context, table string, record map[string]any) (*AddResult, error)

	// GetTable returns the full contents of one of the enumerated tables.
	// An unknown name returns an empty table.
	GetTable(ctx context.Context, name string) (*Table, error)

	// GetRecord returns the non-null fields of one document. found is false
	// when no row matches.
	GetRecord(ctx context.Context, docID int) (doc *Document, found bool, err error)

	// Update assigns value to column on every row of table matching cond.
	// Documents writes also stamp modified_date on the matched rows.
	Update(ctx context.Context, cond map[string]any, column string, value any, table string) (int64, error)

	// DeleteDocument removes a document and every row referencing it.
	DeleteDocument(ctx context.Context, docID int) error

	// ListDocuments retrieves documents matching the given filters.
	ListDocuments(ctx context.Context, filters DocumentFilters) ([]*Document, error)

	// AddPath attaches a file path to a document.
	AddPath(ctx context.Context, docID int, path string) error

	// RemovePath detaches a file path and returns how many rows went.
	RemovePath(ctx context.Context, docID int, path string) (int64, error)

	// Paths lists a document's file paths.
	Paths(ctx context.Context, docID int) ([]string, error)

	// Contributors lists a document's authors and editors.
	Contributors(ctx context.Context, docID int) ([]*Contributor, error)
}

// AuthorService defines the primary port for contributor maintenance.
type AuthorService interface {
	// UpdateAuthors replaces a document's contributors of one role with the
	// parsed authors (a string or []string) and refreshes the cached
	// author_lasts or editor column.
	UpdateAuthors(ctx context.Context, docID int, authors any, asEditors bool) error
}

// AddResult contains the result of an Add.
type AddResult struct {
	ID     int
	Unused []string
}

// Table is the full contents of one table.
type Table struct {
	Name    string
	Columns []string
	Rows    []map[string]any
}

// Document represents a document at the port boundary. Fields holds every
// non-null column, keyed by storage name.
type Document struct {
	ID           int
	Type         string
	Title        string
	AuthorLasts  string
	Year         *int
	CitationKey  string
	Editor       string
	Keyword      string
	Read         bool
	Favorite     bool
	AddDate      int
	ModifiedDate float64
	Fields       map[string]any
}

// DocumentFilters contains filter options for listing documents.
type DocumentFilters struct {
	ProjectIDs []int
	// Cascade includes documents of descendant projects.
	Cascade bool
	Search  string
	// SearchFields defaults to title and author_lasts.
	SearchFields []string
	// FilterID applies a saved custom filter when non-zero.
	FilterID int
	Limit    int
}

// Contributor represents an author or editor of a document.
type Contributor struct {
	Role      string
	LastName  string
	FirstName string
	FullName  string
}
