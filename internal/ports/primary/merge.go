package primary

import "context"

// MergeService defines the primary port for duplicate detection and merge.
type MergeService interface {
	// FindDuplicates returns the ids of documents sharing a value with the
	// query on any compared field.
	FindDuplicates(ctx context.Context, query DuplicateQuery) ([]int, error)

	// Merge folds the secondary document into the primary one.
	Merge(ctx context.Context, req MergeRequest) (*MergeResult, error)
}

// DuplicateQuery selects what FindDuplicates compares. With DocID set the
// values are read from that document, which is excluded from the result;
// otherwise Values supplies them. Fields defaults to the configured
// duplicate fields, or the keys of Values when DocID is zero.
type DuplicateQuery struct {
	DocID  int
	Fields []string
	Values map[string]any
}

// MergeRequest contains parameters for merging two documents.
type MergeRequest struct {
	DocIDs    [2]int
	PrimaryID int
	// FieldChoices holds the resolved value per Documents field.
	FieldChoices map[string]any
	// FieldSources names, for author_lasts, editor and file_paths, the id
	// whose rows survive.
	FieldSources  map[string]int
	UnionProjects bool
}

// MergeResult contains the result of a merge.
type MergeResult struct {
	PrimaryID int
	// Ignored lists FieldChoices keys that are not Documents fields.
	Ignored []string
}
