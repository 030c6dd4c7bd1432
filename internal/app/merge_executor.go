package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/arda/internal/core/author"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/core/merge"
	"github.com/example/arda/internal/ports/secondary"
)

// MergeExecutor applies planned merge steps.
// This is the imperative shell around merge.Plan: the only place a merge
// touches storage.
type MergeExecutor interface {
	Execute(ctx context.Context, steps []merge.Step) error
}

// StoreMergeExecutor implements MergeExecutor over the record store.
type StoreMergeExecutor struct {
	stores Stores
	now    func() time.Time
}

// NewMergeExecutor creates a new StoreMergeExecutor.
func NewMergeExecutor(stores Stores) *StoreMergeExecutor {
	return &StoreMergeExecutor{stores: stores, now: time.Now}
}

// Execute runs steps in order. Callers wrap it in a transaction.
func (e *StoreMergeExecutor) Execute(ctx context.Context, steps []merge.Step) error {
	// Cache columns the caller chose explicitly are never recomputed.
	chosen := map[string]bool{}
	for _, step := range steps {
		if step.Kind == merge.StepSetFields {
			for k := range step.Fields {
				chosen[k] = true
			}
		}
	}

	for _, step := range steps {
		if err := e.executeOne(ctx, step, chosen); err != nil {
			return fmt.Errorf("failed to execute %s step: %w", step.Kind, err)
		}
	}
	return nil
}

func (e *StoreMergeExecutor) executeOne(ctx context.Context, step merge.Step, chosen map[string]bool) error {
	switch step.Kind {
	case merge.StepSetFields:
		return e.setFields(ctx, step)
	case merge.StepTakeContributors:
		return e.takeContributors(ctx, step, chosen)
	case merge.StepTakePaths:
		return e.moveRows(ctx, fields.TableDocPaths, step.From, step.To, nil, true)
	case merge.StepRepointMemberships:
		return e.moveRows(ctx, fields.TableDocProj, step.From, step.To, nil, false)
	case merge.StepRepointNotes:
		return e.moveRows(ctx, fields.TableProjNotes, step.From, step.To, nil, false)
	case merge.StepDeleteSecondary:
		_, err := deleteDocumentRows(ctx, e.stores.Records, step.From)
		return err
	default:
		return fmt.Errorf("%w: unknown merge step %q", errs.ErrPrecondition, step.Kind)
	}
}

func (e *StoreMergeExecutor) setFields(ctx context.Context, step merge.Step) error {
	set := make(secondary.Row, len(step.Fields))
	for k, v := range step.Fields {
		coerced, err := fields.Coerce(fields.Classify(fields.TableDocuments, k), v)
		if err != nil {
			return errs.Preconditionf("field %s: %v", k, err)
		}
		set[k] = coerced
	}
	_, err := updateDocuments(ctx, e.stores.Records, secondary.Cond{"doc_id": step.To}, set, e.now())
	return err
}

func (e *StoreMergeExecutor) takeContributors(ctx context.Context, step merge.Step, chosen map[string]bool) error {
	extra := secondary.Cond{"contribution": step.Role}
	if err := e.moveRows(ctx, fields.TableDocAuth, step.From, step.To, extra, true); err != nil {
		return err
	}

	cacheColumn := "author_lasts"
	if step.Role == fields.RoleEditor {
		cacheColumn = "editor"
	}
	if chosen[cacheColumn] {
		return nil
	}

	records, err := e.stores.Contributors.ListByDocument(ctx, step.To, step.Role)
	if err != nil {
		return err
	}
	names := make([]author.Name, len(records))
	for i, r := range records {
		names[i] = author.Name{Full: r.FullName, Last: r.LastName, First: r.FirstName}
	}
	cache := author.JoinLasts(names)
	if step.Role == fields.RoleEditor {
		cache = author.JoinFull(names)
	}
	_, err = updateDocuments(ctx, e.stores.Records, secondary.Cond{"doc_id": step.To}, secondary.Row{cacheColumn: cache}, e.now())
	return err
}

// moveRows re-points rows of table from one document to another. With
// replace set, the target's own matching rows are deleted first.
func (e *StoreMergeExecutor) moveRows(ctx context.Context, table string, from, to int, extra secondary.Cond, replace bool) error {
	target := secondary.Cond{"doc_id": to}
	source := secondary.Cond{"doc_id": from}
	for k, v := range extra {
		target[k] = v
		source[k] = v
	}

	if replace {
		if _, err := e.stores.Records.Delete(ctx, table, target); err != nil {
			return err
		}
	}
	_, err := e.stores.Records.Update(ctx, table, source, secondary.Row{"doc_id": to})
	return err
}

var _ MergeExecutor = (*StoreMergeExecutor)(nil)
