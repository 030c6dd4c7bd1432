package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/example/arda/internal/core/bibtex"
	"github.com/example/arda/internal/core/document"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/ports/secondary"
)

// ExportServiceImpl implements the ExportService interface.
type ExportServiceImpl struct {
	stores        Stores
	projects      primary.ProjectService
	workspace     secondary.ExportWorkspace
	defaultFields []string
	log           *logging.Logger
	now           func() time.Time
}

// NewExportService creates a new ExportService with injected dependencies.
// defaultFields replaces the registry's BibTeX field list when non-empty.
func NewExportService(
	stores Stores,
	projects primary.ProjectService,
	workspace secondary.ExportWorkspace,
	defaultFields []string,
	log *logging.Logger,
) *ExportServiceImpl {
	return &ExportServiceImpl{
		stores:        stores,
		projects:      projects,
		workspace:     workspace,
		defaultFields: defaultFields,
		log:           log.With("service", "export"),
		now:           time.Now,
	}
}

// Write exports docIDs, in order, to filename.
func (s *ExportServiceImpl) Write(ctx context.Context, docIDs []int, filename string, wanted []string) (*primary.ExportResult, error) {
	if filename == "" {
		return nil, errs.Preconditionf("export filename is required")
	}

	data, result, err := s.render(ctx, docIDs, wanted)
	if err != nil {
		return nil, err
	}

	path := s.workspace.Resolve(filename)
	if err := s.workspace.WriteFile(ctx, path, data); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	result.Files = []string{path}
	return result, nil
}

// ExportProject writes a project's documents to <path>/<name>.bib and to
// every extra bib path, then stamps bib_built.
func (s *ExportServiceImpl) ExportProject(ctx context.Context, projID int, cascade bool) (*primary.ExportResult, error) {
	p, err := s.projects.GetProject(ctx, projID)
	if err != nil {
		return nil, err
	}

	docIDs, err := s.projects.DocsIn(ctx, []int{projID}, cascade)
	if err != nil {
		return nil, err
	}

	data, result, err := s.render(ctx, docIDs, nil)
	if err != nil {
		return nil, err
	}

	targets := append([]string{filepath.Join(p.Path, p.Text+".bib")}, p.BibPaths...)
	for _, t := range targets {
		path := s.workspace.Resolve(t)
		if err := s.workspace.WriteFile(ctx, path, data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
	}

	if err := s.stores.Projects.MarkBibBuilt(ctx, projID, document.Millis(s.now())); err != nil {
		return nil, err
	}
	return result, nil
}

// render builds the .bib text. Missing documents are skipped and field
// problems collected; only storage errors abort.
func (s *ExportServiceImpl) render(ctx context.Context, docIDs []int, wanted []string) ([]byte, *primary.ExportResult, error) {
	if len(wanted) == 0 {
		wanted = s.defaultFields
	}
	if len(wanted) == 0 {
		wanted = fields.BibFields()
	}

	result := &primary.ExportResult{}
	var (
		entries  []string
		warnings *multierror.Error
	)

	for _, id := range docIDs {
		rec, err := s.stores.Documents.GetByID(ctx, id)
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("export skipped missing document", "doc_id", id)
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		contributors, err := s.stores.Contributors.ListByDocument(ctx, id, fields.RoleAuthor)
		if err != nil {
			return nil, nil, err
		}
		authors := make([]string, len(contributors))
		for i, c := range contributors {
			authors[i] = c.FullName
		}

		entry, problems := bibtex.BuildEntry(bibtex.Source{
			DocID:   id,
			Values:  fields.Values(rec),
			Authors: authors,
		}, wanted)
		for _, p := range problems {
			s.log.Warn("export field skipped", "doc_id", id, "error", p)
			warnings = multierror.Append(warnings, p)
		}

		entries = append(entries, entry.String())
		result.Written = append(result.Written, id)
	}

	result.Warnings = warnings.ErrorOrNil()
	return []byte(strings.Join(entries, "\n")), result, nil
}

// Ensure ExportServiceImpl implements the interface.
var _ primary.ExportService = (*ExportServiceImpl)(nil)
