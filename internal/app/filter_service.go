package app

import (
	"context"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/ports/secondary"
)

// FilterServiceImpl implements the FilterService interface.
type FilterServiceImpl struct {
	filterRepo secondary.FilterRepository
}

// NewFilterService creates a new FilterService with injected dependencies.
func NewFilterService(filterRepo secondary.FilterRepository) *FilterServiceImpl {
	return &FilterServiceImpl{filterRepo: filterRepo}
}

// CreateFilter saves a filter on a Documents field.
func (s *FilterServiceImpl) CreateFilter(ctx context.Context, req primary.CreateFilterRequest) (*primary.Filter, error) {
	if req.Name == "" {
		return nil, errs.Preconditionf("filter name is required")
	}
	if !fields.IsColumn(fields.TableDocuments, req.Field) {
		return nil, errs.Preconditionf("unknown document field %q", req.Field)
	}

	record := &secondary.FilterRecord{Name: req.Name, Field: req.Field, Value: req.Value}
	if err := s.filterRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return s.recordToFilter(record), nil
}

// ListFilters retrieves all filters.
func (s *FilterServiceImpl) ListFilters(ctx context.Context) ([]*primary.Filter, error) {
	records, err := s.filterRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filters := make([]*primary.Filter, len(records))
	for i, r := range records {
		filters[i] = s.recordToFilter(r)
	}
	return filters, nil
}

// DeleteFilter deletes a filter.
func (s *FilterServiceImpl) DeleteFilter(ctx context.Context, filterID int) error {
	return s.filterRepo.Delete(ctx, filterID)
}

func (s *FilterServiceImpl) recordToFilter(r *secondary.FilterRecord) *primary.Filter {
	return &primary.Filter{ID: r.ID, Name: r.Name, Field: r.Field, Value: r.Value}
}

// Ensure FilterServiceImpl implements the interface.
var _ primary.FilterService = (*FilterServiceImpl)(nil)
