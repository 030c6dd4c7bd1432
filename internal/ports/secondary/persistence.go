// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// Row is one table row keyed by storage column name.
type Row map[string]any

// Cond is a conjunctive equality condition: every key must equal its value.
// An empty Cond matches every row.
type Cond map[string]any

// Transactor runs a unit of work atomically. Repositories called with the
// context passed to fn take part in the transaction; nested calls join the
// outer transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RecordStore defines the table-level primitives every table supports.
// Table and column names must come from the field registry; the store
// refuses anything else with an ErrPrecondition.
type RecordStore interface {
	// FetchAll returns every row of table in rowid order.
	FetchAll(ctx context.Context, table string) ([]Row, error)

	// Select returns the rows of table matching cond.
	Select(ctx context.Context, table string, cond Cond) ([]Row, error)

	// Insert adds one row.
	Insert(ctx context.Context, table string, row Row) error

	// Update assigns set on every row matching cond and returns the count.
	Update(ctx context.Context, table string, cond Cond, set Row) (int64, error)

	// Delete removes every row matching cond and returns the count.
	Delete(ctx context.Context, table string, cond Cond) (int64, error)

	// MaxID returns the largest value of column across tables, 0 when all
	// are empty.
	MaxID(ctx context.Context, column string, tables ...string) (int, error)
}

// DocumentRepository defines the secondary port for Documents rows.
type DocumentRepository interface {
	// Create inserts a document with its ID already assigned.
	Create(ctx context.Context, doc *DocumentRecord) error

	// GetByID returns the document, ErrNotFound when absent and
	// ErrMultiplicity when the id matches more than one row.
	GetByID(ctx context.Context, id int) (*DocumentRecord, error)

	// Exists reports whether a document with id exists.
	Exists(ctx context.Context, id int) (bool, error)

	// List retrieves documents matching the query, ordered by id.
	List(ctx context.Context, query DocumentQuery) ([]*DocumentRecord, error)

	// MatchField returns the ids of documents whose field equals value.
	MatchField(ctx context.Context, field string, value any) ([]int, error)
}

// DocumentRecord represents a Documents row. Tags name the storage column.
type DocumentRecord struct {
	ID            int     `field:"doc_id"`
	DocType       string  `field:"doc_type"`
	Title         string  `field:"title"`
	AuthorLasts   string  `field:"author_lasts"`
	Year          *int    `field:"year"`
	CitationKey   string  `field:"citation_key"`
	Journal       string  `field:"journal"`
	BookTitle     string  `field:"booktitle"`
	Editor        string  `field:"editor"`
	Publisher     string  `field:"publisher"`
	Address       string  `field:"address"`
	Volume        string  `field:"volume"`
	Number        string  `field:"number"`
	Pages         string  `field:"pages"`
	Month         string  `field:"month"`
	Series        string  `field:"series"`
	Edition       string  `field:"edition"`
	Chapter       string  `field:"chapter"`
	School        string  `field:"school"`
	Institution   string  `field:"institution"`
	Organization  string  `field:"organization"`
	HowPublished  string  `field:"howpublished"`
	DOI           string  `field:"doi"`
	ISBN          string  `field:"isbn"`
	ISSN          string  `field:"issn"`
	URL           string  `field:"url"`
	EPrint        string  `field:"eprint"`
	ArchivePrefix string  `field:"archiveprefix"`
	PrimaryClass  string  `field:"primaryclass"`
	Abstract      string  `field:"abstract"`
	Note          string  `field:"note"`
	Language      string  `field:"language"`
	Keyword       string  `field:"keyword"`
	Read          bool    `field:"read"`
	Favorite      bool    `field:"favorite"`
	AddDate       int     `field:"add_date"`
	ModifiedDate  float64 `field:"modified_date"`
}

// DocumentQuery contains filter options for listing documents. Every set
// option narrows the result.
type DocumentQuery struct {
	// IDs restricts to these ids when non-nil. An empty non-nil slice
	// matches nothing.
	IDs []int
	// Search is matched as a case-insensitive substring against any of
	// SearchFields.
	Search       string
	SearchFields []string
	// Equals requires exact matches on each column.
	Equals map[string]any
	Limit  int
}

// ContributorRepository defines the secondary port for Doc_Auth rows.
type ContributorRepository interface {
	// Create inserts a contributor row.
	Create(ctx context.Context, c *ContributorRecord) error

	// ListByDocument returns a document's contributors of role in
	// contribution order. An empty role returns every role.
	ListByDocument(ctx context.Context, docID int, role string) ([]*ContributorRecord, error)

	// DeleteByRole removes a document's contributors of role.
	DeleteByRole(ctx context.Context, docID int, role string) error
}

// ContributorRecord represents a Doc_Auth row.
type ContributorRecord struct {
	DocID        int    `field:"doc_id"`
	Contribution string `field:"contribution"`
	LastName     string `field:"last_name"`
	FirstName    string `field:"first_name"`
	FullName     string `field:"full_name"`
	Order        int    `field:"contribution_order"`
}

// ProjectRepository defines the secondary port for Projects rows.
type ProjectRepository interface {
	// Create inserts a project with its ID already assigned.
	Create(ctx context.Context, p *ProjectRecord) error

	// GetByID returns the project or ErrNotFound.
	GetByID(ctx context.Context, id int) (*ProjectRecord, error)

	// Exists reports whether a project with id exists.
	Exists(ctx context.Context, id int) (bool, error)

	// List returns every project ordered by id.
	List(ctx context.Context) ([]*ProjectRecord, error)

	// SetParent moves one project under parentID.
	SetParent(ctx context.Context, id, parentID int) error

	// ReparentChildren moves every direct child of fromID under toID.
	ReparentChildren(ctx context.Context, fromID, toID int) (int64, error)

	// Delete removes the project row only.
	Delete(ctx context.Context, id int) error

	// MarkBibBuilt stamps bib_built with the given epoch-millis.
	MarkBibBuilt(ctx context.Context, id int, millis float64) error
}

// ProjectRecord represents a Projects row.
type ProjectRecord struct {
	ID            int     `field:"proj_id"`
	Text          string  `field:"proj_text"`
	ParentID      int     `field:"parent_id"`
	Path          string  `field:"path"`
	Description   string  `field:"description"`
	ExpandDefault bool    `field:"expand_default"`
	BibBuilt      float64 `field:"bib_built"`
	BibPaths      string  `field:"bib_paths"`
}

// MembershipRepository defines the secondary port for Doc_Proj rows.
type MembershipRepository interface {
	// Add inserts a membership row. Duplicates are allowed.
	Add(ctx context.Context, docID, projID int) error

	// Remove deletes every row for the pair.
	Remove(ctx context.Context, docID, projID int) (int64, error)

	// DocsIn returns the distinct ids of documents in any of projIDs, sorted.
	DocsIn(ctx context.Context, projIDs []int) ([]int, error)

	// ProjectsOf returns the distinct project ids a document belongs to.
	ProjectsOf(ctx context.Context, docID int) ([]int, error)
}

// PathRepository defines the secondary port for Doc_Paths rows.
type PathRepository interface {
	Add(ctx context.Context, docID int, fullPath string) error
	Remove(ctx context.Context, docID int, fullPath string) (int64, error)
	ListByDocument(ctx context.Context, docID int) ([]string, error)
}

// ProjectNoteRepository defines the secondary port for Proj_Notes rows.
type ProjectNoteRepository interface {
	// Set replaces the note for (projID, docID).
	Set(ctx context.Context, note *ProjectNoteRecord) error

	// ListByProject returns a project's notes ordered by document id.
	ListByProject(ctx context.Context, projID int) ([]*ProjectNoteRecord, error)
}

// ProjectNoteRecord represents a Proj_Notes row.
type ProjectNoteRecord struct {
	ProjID int    `field:"proj_id"`
	DocID  int    `field:"doc_id"`
	Notes  string `field:"notes"`
}

// FilterRepository defines the secondary port for Custom_Filters rows.
type FilterRepository interface {
	Create(ctx context.Context, f *FilterRecord) error
	GetByID(ctx context.Context, id int) (*FilterRecord, error)
	List(ctx context.Context) ([]*FilterRecord, error)
	Delete(ctx context.Context, id int) error
}

// FilterRecord represents a Custom_Filters row.
type FilterRecord struct {
	ID    int    `field:"filter_id"`
	Name  string `field:"filter_name"`
	Field string `field:"filter_field"`
	Value string `field:"filter_value"`
}
