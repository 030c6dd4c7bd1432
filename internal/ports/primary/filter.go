package primary

import "context"

// FilterService defines the primary port for saved document filters.
type FilterService interface {
	CreateFilter(ctx context.Context, req CreateFilterRequest) (*Filter, error)
	ListFilters(ctx context.Context) ([]*Filter, error)
	DeleteFilter(ctx context.Context, filterID int) error
}

// CreateFilterRequest contains parameters for saving a filter.
type CreateFilterRequest struct {
	Name  string
	Field string
	Value string
}

// Filter represents a saved filter: documents whose Field equals Value.
type Filter struct {
	ID    int
	Name  string
	Field string
	Value string
}
