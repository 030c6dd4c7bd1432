package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/core/merge"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/primary"
)

// MergeServiceImpl implements the MergeService interface.
type MergeServiceImpl struct {
	stores          Stores
	executor        MergeExecutor
	duplicateFields []string
	log             *logging.Logger
}

// NewMergeService creates a new MergeService with injected dependencies.
// duplicateFields are compared when a query names none.
func NewMergeService(stores Stores, executor MergeExecutor, duplicateFields []string, log *logging.Logger) *MergeServiceImpl {
	if len(duplicateFields) == 0 {
		duplicateFields = []string{"title"}
	}
	return &MergeServiceImpl{
		stores:          stores,
		executor:        executor,
		duplicateFields: duplicateFields,
		log:             log.With("service", "merge"),
	}
}

// FindDuplicates returns the documents sharing a value on any compared field.
func (s *MergeServiceImpl) FindDuplicates(ctx context.Context, query primary.DuplicateQuery) ([]int, error) {
	var (
		values  map[string]any
		compare = query.Fields
	)

	if query.DocID != 0 {
		rec, err := s.stores.Documents.GetByID(ctx, query.DocID)
		if err != nil {
			return nil, err
		}
		values = fields.Values(rec)
		if len(compare) == 0 {
			compare = s.duplicateFields
		}
	} else {
		std, unrecognized := fields.StandardizeKeys(query.Values, fields.TableDocuments, fields.ToField)
		if len(unrecognized) > 0 {
			s.log.Warn("duplicate query keys matched no field", "keys", unrecognized)
		}
		values = std
		if len(compare) == 0 {
			for k := range std {
				compare = append(compare, k)
			}
			sort.Strings(compare)
		}
	}

	found := map[int]bool{}
	for _, f := range compare {
		if !fields.IsColumn(fields.TableDocuments, f) {
			s.log.Warn("duplicate comparison on unknown field skipped", "field", f)
			continue
		}
		v, err := fields.Coerce(fields.Classify(fields.TableDocuments, f), values[f])
		if err != nil {
			return nil, errs.Preconditionf("field %s: %v", f, err)
		}
		if v == nil || v == "" {
			continue
		}

		ids, err := s.stores.Documents.MatchField(ctx, f, v)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			found[id] = true
		}
	}
	delete(found, query.DocID)

	out := make([]int, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Ints(out)
	return out, nil
}

// Merge folds the secondary document into the primary one. Nothing is
// changed when the request is refused.
func (s *MergeServiceImpl) Merge(ctx context.Context, req primary.MergeRequest) (*primary.MergeResult, error) {
	coreReq := merge.Request{
		DocIDs:        req.DocIDs,
		PrimaryID:     req.PrimaryID,
		FieldChoices:  req.FieldChoices,
		FieldSources:  req.FieldSources,
		UnionProjects: req.UnionProjects,
	}

	var ignored []string
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		exists := make(map[int]bool, 2)
		for _, id := range req.DocIDs {
			ok, err := s.stores.Documents.Exists(ctx, id)
			if err != nil {
				return err
			}
			exists[id] = ok
		}

		guard := merge.CanMerge(merge.MergeContext{Request: coreReq, Exists: exists})
		if !guard.Allowed {
			return guard.Error()
		}

		var steps []merge.Step
		steps, ignored = merge.Plan(coreReq)
		return s.executor.Execute(ctx, steps)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to merge %d into %d: %w", coreReq.SecondaryID(), req.PrimaryID, err)
	}

	if len(ignored) > 0 {
		s.log.Warn("merge field choices matched no column", "keys", ignored)
	}
	s.log.Info("documents merged", "primary", req.PrimaryID, "secondary", coreReq.SecondaryID())

	return &primary.MergeResult{PrimaryID: req.PrimaryID, Ignored: ignored}, nil
}

// Ensure MergeServiceImpl implements the interface.
var _ primary.MergeService = (*MergeServiceImpl)(nil)
