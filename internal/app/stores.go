// Package app contains the application layer: service implementations and
// the executor that applies planned merge steps.
package app

import (
	"context"
	"time"

	"github.com/example/arda/internal/core/document"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

// Stores bundles the persistence ports the services share.
type Stores struct {
	Tx           secondary.Transactor
	Records      secondary.RecordStore
	Documents    secondary.DocumentRepository
	Contributors secondary.ContributorRepository
	Projects     secondary.ProjectRepository
	Memberships  secondary.MembershipRepository
	Paths        secondary.PathRepository
	Notes        secondary.ProjectNoteRepository
	Filters      secondary.FilterRepository
}

// docReferencingTables are the tables whose doc_id points at Documents.
var docReferencingTables = []string{
	fields.TableDocPaths,
	fields.TableDocAuth,
	fields.TableDocProj,
	fields.TableProjNotes,
}

// updateDocuments applies set to the Documents rows matching cond and
// stamps their modified_date in the same statement.
func updateDocuments(ctx context.Context, records secondary.RecordStore, cond secondary.Cond, set secondary.Row, now time.Time) (int64, error) {
	stamped := make(secondary.Row, len(set)+1)
	for k, v := range set {
		stamped[k] = v
	}
	if _, ok := stamped["modified_date"]; !ok {
		stamped["modified_date"] = document.Millis(now)
	}
	return records.Update(ctx, fields.TableDocuments, cond, stamped)
}

// deleteDocumentRows removes a document and every row referencing it.
// Callers run it inside a transaction.
func deleteDocumentRows(ctx context.Context, records secondary.RecordStore, docID int) (int64, error) {
	cond := secondary.Cond{"doc_id": docID}
	n, err := records.Delete(ctx, fields.TableDocuments, cond)
	if err != nil {
		return 0, err
	}
	for _, table := range docReferencingTables {
		if _, err := records.Delete(ctx, table, cond); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// nextDocID returns the id a new document gets: one past every doc_id in
// Documents and the tables referencing it.
func nextDocID(ctx context.Context, records secondary.RecordStore) (int, error) {
	tables := append([]string{fields.TableDocuments}, docReferencingTables...)
	maxID, err := records.MaxID(ctx, "doc_id", tables...)
	if err != nil {
		return 0, err
	}
	return document.NextID(maxID), nil
}

// nextProjID is nextDocID for projects.
func nextProjID(ctx context.Context, records secondary.RecordStore) (int, error) {
	maxID, err := records.MaxID(ctx, "proj_id", fields.TableProjects, fields.TableDocProj, fields.TableProjNotes)
	if err != nil {
		return 0, err
	}
	return document.NextID(maxID), nil
}
