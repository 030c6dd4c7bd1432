package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/arda/internal/core/author"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/ports/secondary"
)

// AuthorServiceImpl implements the AuthorService interface.
type AuthorServiceImpl struct {
	stores Stores
	log    *logging.Logger
	now    func() time.Time
}

// NewAuthorService creates a new AuthorService with injected dependencies.
func NewAuthorService(stores Stores, log *logging.Logger) *AuthorServiceImpl {
	return &AuthorServiceImpl{
		stores: stores,
		log:    log.With("service", "authors"),
		now:    time.Now,
	}
}

// UpdateAuthors replaces a document's contributors of one role.
func (s *AuthorServiceImpl) UpdateAuthors(ctx context.Context, docID int, authors any, asEditors bool) error {
	names, err := author.Format(authors)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPrecondition, err)
	}

	role, cacheColumn, cache := fields.RoleAuthor, "author_lasts", author.JoinLasts(names)
	if asEditors {
		role, cacheColumn, cache = fields.RoleEditor, "editor", author.JoinFull(names)
	}

	for _, n := range names {
		if n.Anomalous {
			s.log.Warn("name not in \"Last, First\" form", "doc_id", docID, "name", n.Full)
		}
	}

	return s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.stores.Documents.Exists(ctx, docID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.NotFoundf("document %d", docID)
		}

		if err := s.stores.Contributors.DeleteByRole(ctx, docID, role); err != nil {
			return err
		}
		for i, n := range names {
			if err := s.stores.Contributors.Create(ctx, &secondary.ContributorRecord{
				DocID:        docID,
				Contribution: role,
				LastName:     n.Last,
				FirstName:    n.First,
				FullName:     n.Full,
				Order:        i,
			}); err != nil {
				return err
			}
		}

		if _, err := updateDocuments(ctx, s.stores.Records,
			secondary.Cond{"doc_id": docID}, secondary.Row{cacheColumn: cache}, s.now(),
		); err != nil {
			return fmt.Errorf("failed to refresh %s: %w", cacheColumn, err)
		}
		return nil
	})
}

// Ensure AuthorServiceImpl implements the interface.
var _ primary.AuthorService = (*AuthorServiceImpl)(nil)
