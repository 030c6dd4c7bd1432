package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/example/arda/internal/core/document"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/core/project"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/ports/secondary"
)

// defaultSearchFields are searched when DocumentFilters names none.
var defaultSearchFields = []string{"title", "author_lasts"}

// DocumentServiceImpl implements the DocumentService interface.
type DocumentServiceImpl struct {
	stores  Stores
	authors primary.AuthorService
	log     *logging.Logger
	now     func() time.Time
}

// NewDocumentService creates a new DocumentService with injected dependencies.
func NewDocumentService(stores Stores, authors primary.AuthorService, log *logging.Logger) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		stores:  stores,
		authors: authors,
		log:     log.With("service", "documents"),
		now:     time.Now,
	}
}

// Add inserts a record into one of the enumerated tables.
func (s *DocumentServiceImpl) Add(ctx context.Context, table string, record map[string]any) (*primary.AddResult, error) {
	if !fields.KnownTable(table) {
		s.log.Warn("add to unknown table ignored", "table", table)
		return &primary.AddResult{}, nil
	}

	std, unrecognized := fields.StandardizeKeys(record, table, fields.ToField)
	for _, k := range unrecognized {
		delete(std, k)
	}

	var (
		result *primary.AddResult
		err    error
	)
	switch table {
	case fields.TableDocuments:
		result, err = s.addDocument(ctx, std)
	case fields.TableProjects:
		result, err = s.addProject(ctx, std)
	case fields.TableCustomFilters:
		result, err = s.addFilter(ctx, std)
	default:
		result, err = s.addRow(ctx, table, std)
	}
	if err != nil {
		return nil, err
	}

	result.Unused = append(result.Unused, unrecognized...)
	sort.Strings(result.Unused)
	if len(result.Unused) > 0 {
		s.log.Warn("keys matched no column", "table", table, "keys", result.Unused)
	}
	return result, nil
}

func (s *DocumentServiceImpl) addDocument(ctx context.Context, std map[string]any) (*primary.AddResult, error) {
	authors, hasAuthors := std[fields.AuthorField]
	editors, hasEditors := std["editor"]
	delete(std, fields.AuthorField)
	delete(std, "editor")

	result := &primary.AddResult{}
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		id, err := s.resolveID(ctx, fields.TableDocuments, "doc_id", std, s.stores.Documents.Exists, nextDocID)
		if err != nil {
			return err
		}

		rec := &secondary.DocumentRecord{}
		if err := assignAll(rec, std, fields.TableDocuments); err != nil {
			return err
		}

		now := s.now()
		rec.ID = id
		if rec.Title == "" {
			rec.Title = document.DefaultTitle
		}
		if rec.AddDate == 0 {
			rec.AddDate = document.DateStamp(now)
		}
		rec.ModifiedDate = document.Millis(now)
		rec.Keyword = document.NormalizeKeyword(rec.Keyword)

		if err := s.stores.Documents.Create(ctx, rec); err != nil {
			return err
		}

		if hasAuthors {
			if err := s.authors.UpdateAuthors(ctx, id, authors, false); err != nil {
				return fmt.Errorf("failed to set authors: %w", err)
			}
		}
		if hasEditors {
			if err := s.authors.UpdateAuthors(ctx, id, editors, true); err != nil {
				return fmt.Errorf("failed to set editors: %w", err)
			}
		}

		result.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("document added", "doc_id", result.ID)
	return result, nil
}

func (s *DocumentServiceImpl) addProject(ctx context.Context, std map[string]any) (*primary.AddResult, error) {
	result := &primary.AddResult{}
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		rec := &secondary.ProjectRecord{}
		if err := assignAll(rec, std, fields.TableProjects); err != nil {
			return err
		}

		parentExists := false
		if rec.ParentID != project.Root {
			ok, err := s.stores.Projects.Exists(ctx, rec.ParentID)
			if err != nil {
				return err
			}
			parentExists = ok
		}
		guard := project.CanCreateProject(project.CreateProjectContext{
			ProjText:     rec.Text,
			ParentID:     rec.ParentID,
			ParentExists: parentExists,
		})
		if !guard.Allowed {
			return guard.Error()
		}

		id, err := s.resolveID(ctx, fields.TableProjects, "proj_id", std, s.stores.Projects.Exists, nextProjID)
		if err != nil {
			return err
		}
		rec.ID = id

		if err := s.stores.Projects.Create(ctx, rec); err != nil {
			return err
		}
		result.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *DocumentServiceImpl) addFilter(ctx context.Context, std map[string]any) (*primary.AddResult, error) {
	guard := document.CanInsertRow(document.RowContext{
		Table:    fields.TableCustomFilters,
		Required: fields.Required(fields.TableCustomFilters),
		Supplied: std,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}
	if field, _ := std["filter_field"].(string); !fields.IsColumn(fields.TableDocuments, field) {
		return nil, errs.Preconditionf("unknown document field %q", std["filter_field"])
	}

	rec := &secondary.FilterRecord{}
	if err := assignAll(rec, std, fields.TableCustomFilters); err != nil {
		return nil, err
	}
	if err := s.stores.Filters.Create(ctx, rec); err != nil {
		return nil, err
	}
	return &primary.AddResult{ID: rec.ID}, nil
}

// addRow inserts into a relation table after checking its mandatory keys.
func (s *DocumentServiceImpl) addRow(ctx context.Context, table string, std map[string]any) (*primary.AddResult, error) {
	guard := document.CanInsertRow(document.RowContext{
		Table:    table,
		Required: fields.Required(table),
		Supplied: std,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	row := make(secondary.Row, len(std))
	var unused []string
	for k, v := range std {
		if !fields.IsColumn(table, k) {
			unused = append(unused, k)
			continue
		}
		coerced, err := fields.Coerce(fields.Classify(table, k), v)
		if err != nil {
			return nil, errs.Preconditionf("%s.%s: %v", table, k, err)
		}
		row[k] = coerced
	}

	if err := s.stores.Records.Insert(ctx, table, row); err != nil {
		return nil, err
	}
	return &primary.AddResult{Unused: unused}, nil
}

// resolveID returns the caller-supplied id after checking it, or the next
// free one. The id key is removed from std.
func (s *DocumentServiceImpl) resolveID(
	ctx context.Context,
	table, idField string,
	std map[string]any,
	exists func(context.Context, int) (bool, error),
	next func(context.Context, secondary.RecordStore) (int, error),
) (int, error) {
	raw, supplied := std[idField]
	delete(std, idField)
	if raw == nil || raw == "" {
		supplied = false
	}

	if !supplied {
		id, err := next(ctx, s.stores.Records)
		if err != nil {
			return 0, fmt.Errorf("failed to assign %s: %w", idField, err)
		}
		return id, nil
	}

	v, err := fields.Coerce(fields.Int, raw)
	if err != nil {
		return 0, errs.Preconditionf("%s: %v", idField, err)
	}
	id := v.(int)

	inUse := false
	if id > 0 {
		inUse, err = exists(ctx, id)
		if err != nil {
			return 0, err
		}
	}

	guard := document.CanAddRecord(document.AddRecordContext{
		Table:       table,
		IDField:     idField,
		SuppliedID:  id,
		HasSupplied: true,
		IDInUse:     inUse,
	})
	if !guard.Allowed {
		return 0, guard.Error()
	}
	return id, nil
}

// assignAll copies the column keys of std onto rec. Non-column keys were
// already reported by the key translator.
func assignAll(rec any, std map[string]any, table string) error {
	for k, v := range std {
		if !fields.IsColumn(table, k) {
			continue
		}
		if err := fields.Assign(rec, k, v); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrPrecondition, err)
		}
	}
	return nil
}

// GetTable returns the full contents of one table.
func (s *DocumentServiceImpl) GetTable(ctx context.Context, name string) (*primary.Table, error) {
	if !fields.KnownTable(name) {
		s.log.Warn("unknown table requested", "table", name)
		return &primary.Table{Name: name}, nil
	}

	rows, err := s.stores.Records.FetchAll(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	table := &primary.Table{
		Name:    name,
		Columns: fields.Columns(name),
		Rows:    make([]map[string]any, len(rows)),
	}
	for i, r := range rows {
		table.Rows[i] = r
	}
	return table, nil
}

// GetRecord returns the non-null fields of one document.
func (s *DocumentServiceImpl) GetRecord(ctx context.Context, docID int) (*primary.Document, bool, error) {
	rec, err := s.stores.Documents.GetByID(ctx, docID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return recordToDocument(rec), true, nil
}

// Update assigns one column on every matching row.
func (s *DocumentServiceImpl) Update(ctx context.Context, cond map[string]any, column string, value any, table string) (int64, error) {
	if !fields.KnownTable(table) {
		s.log.Warn("update of unknown table ignored", "table", table)
		return 0, nil
	}
	if !fields.IsColumn(table, column) {
		s.log.Warn("update of unknown column ignored", "table", table, "column", column)
		return 0, nil
	}
	for k := range cond {
		if !fields.IsColumn(table, k) {
			s.log.Warn("update with unknown condition key ignored", "table", table, "key", k)
			return 0, nil
		}
	}

	coerced, err := fields.Coerce(fields.Classify(table, column), value)
	if err != nil {
		return 0, errs.Preconditionf("%s.%s: %v", table, column, err)
	}

	set := secondary.Row{column: coerced}
	if table == fields.TableDocuments {
		return updateDocuments(ctx, s.stores.Records, cond, set, s.now())
	}
	return s.stores.Records.Update(ctx, table, cond, set)
}

// DeleteDocument removes a document and every row referencing it.
func (s *DocumentServiceImpl) DeleteDocument(ctx context.Context, docID int) error {
	var removed int64
	err := s.stores.Tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := deleteDocumentRows(ctx, s.stores.Records, docID)
		removed = n
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete document %d: %w", docID, err)
	}
	if removed == 0 {
		s.log.Debug("delete of absent document", "doc_id", docID)
	}
	return nil
}

// ListDocuments retrieves documents matching the filters.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, filters primary.DocumentFilters) ([]*primary.Document, error) {
	query := secondary.DocumentQuery{
		Search:       filters.Search,
		SearchFields: filters.SearchFields,
		Limit:        filters.Limit,
	}
	if len(query.SearchFields) == 0 {
		query.SearchFields = defaultSearchFields
	}

	if len(filters.ProjectIDs) > 0 {
		projIDs := filters.ProjectIDs
		if filters.Cascade {
			forest, err := loadForest(ctx, s.stores.Projects)
			if err != nil {
				return nil, err
			}
			projIDs, err = forest.Expand(projIDs, project.CascadeDepth)
			if err != nil {
				return nil, err
			}
		}
		ids, err := s.stores.Memberships.DocsIn(ctx, projIDs)
		if err != nil {
			return nil, err
		}
		query.IDs = append([]int{}, ids...)
	}

	if filters.FilterID != 0 {
		f, err := s.stores.Filters.GetByID(ctx, filters.FilterID)
		if err != nil {
			return nil, err
		}
		value, err := fields.Coerce(fields.Classify(fields.TableDocuments, f.Field), f.Value)
		if err != nil {
			return nil, errs.Preconditionf("filter %q: %v", f.Name, err)
		}
		query.Equals = map[string]any{f.Field: value}
	}

	records, err := s.stores.Documents.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*primary.Document, len(records))
	for i, r := range records {
		docs[i] = recordToDocument(r)
	}
	return docs, nil
}

// AddPath attaches a file path to an existing document.
func (s *DocumentServiceImpl) AddPath(ctx context.Context, docID int, path string) error {
	if path == "" {
		return errs.Preconditionf("path is required")
	}
	ok, err := s.stores.Documents.Exists(ctx, docID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFoundf("document %d", docID)
	}
	return s.stores.Paths.Add(ctx, docID, path)
}

// RemovePath detaches a file path.
func (s *DocumentServiceImpl) RemovePath(ctx context.Context, docID int, path string) (int64, error) {
	return s.stores.Paths.Remove(ctx, docID, path)
}

// Paths lists a document's file paths.
func (s *DocumentServiceImpl) Paths(ctx context.Context, docID int) ([]string, error) {
	return s.stores.Paths.ListByDocument(ctx, docID)
}

// Contributors lists a document's authors and editors.
func (s *DocumentServiceImpl) Contributors(ctx context.Context, docID int) ([]*primary.Contributor, error) {
	records, err := s.stores.Contributors.ListByDocument(ctx, docID, "")
	if err != nil {
		return nil, err
	}
	out := make([]*primary.Contributor, len(records))
	for i, r := range records {
		out[i] = &primary.Contributor{
			Role:      r.Contribution,
			LastName:  r.LastName,
			FirstName: r.FirstName,
			FullName:  r.FullName,
		}
	}
	return out, nil
}

// Helper methods

func recordToDocument(r *secondary.DocumentRecord) *primary.Document {
	return &primary.Document{
		ID:           r.ID,
		Type:         r.DocType,
		Title:        r.Title,
		AuthorLasts:  r.AuthorLasts,
		Year:         r.Year,
		CitationKey:  r.CitationKey,
		Editor:       r.Editor,
		Keyword:      r.Keyword,
		Read:         r.Read,
		Favorite:     r.Favorite,
		AddDate:      r.AddDate,
		ModifiedDate: r.ModifiedDate,
		Fields:       fields.NonNull(r),
	}
}

// Ensure DocumentServiceImpl implements the interface.
var _ primary.DocumentService = (*DocumentServiceImpl)(nil)
