package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/secondary"
)

// DocumentRepository implements secondary.DocumentRepository with SQLite.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new SQLite document repository.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	if err := insertRow(ctx, conn(ctx, r.db), fields.TableDocuments, fields.Values(doc)); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document by its ID.
func (r *DocumentRepository) GetByID(ctx context.Context, id int) (*secondary.DocumentRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		selectSQL(fields.TableDocuments)+" WHERE doc_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, errs.NotFoundf("document %d", id)
	case 1:
	default:
		return nil, fmt.Errorf("%w: document %d matched %d rows", errs.ErrMultiplicity, id, len(found))
	}

	record := &secondary.DocumentRecord{}
	if err := fill(record, found[0]); err != nil {
		return nil, fmt.Errorf("failed to read document %d: %w", id, err)
	}
	return record, nil
}

// Exists reports whether a document exists.
func (r *DocumentRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM "Documents" WHERE doc_id = ?`, id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check document: %w", err)
	}
	return count > 0, nil
}

// List retrieves documents matching the query.
func (r *DocumentRepository) List(ctx context.Context, query secondary.DocumentQuery) ([]*secondary.DocumentRecord, error) {
	if query.IDs != nil && len(query.IDs) == 0 {
		return nil, nil
	}

	var (
		clauses []string
		args    []any
	)

	if query.IDs != nil {
		clauses = append(clauses, "doc_id IN ("+placeholders(len(query.IDs))+")")
		args = append(args, intArgs(query.IDs)...)
	}

	if query.Search != "" && len(query.SearchFields) > 0 {
		if err := checkColumns(fields.TableDocuments, query.SearchFields...); err != nil {
			return nil, err
		}
		ors := make([]string, len(query.SearchFields))
		for i, f := range query.SearchFields {
			ors[i] = "LOWER(COALESCE(" + quote(f) + ", '')) LIKE ?"
			args = append(args, "%"+strings.ToLower(query.Search)+"%")
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	for _, k := range sortedKeys(query.Equals) {
		if err := checkColumns(fields.TableDocuments, k); err != nil {
			return nil, err
		}
		clauses = append(clauses, quote(k)+" = ?")
		args = append(args, query.Equals[k])
	}

	q := selectSQL(fields.TableDocuments)
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY doc_id"
	if query.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", query.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	found, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents: %w", err)
	}

	docs := make([]*secondary.DocumentRecord, 0, len(found))
	for _, row := range found {
		record := &secondary.DocumentRecord{}
		if err := fill(record, row); err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		docs = append(docs, record)
	}
	return docs, nil
}

// MatchField returns the ids of documents whose field equals value.
func (r *DocumentRepository) MatchField(ctx context.Context, field string, value any) ([]int, error) {
	if err := checkColumns(fields.TableDocuments, field); err != nil {
		return nil, err
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT doc_id FROM "Documents" WHERE `+quote(field)+` = ? ORDER BY doc_id`, value)
	if err != nil {
		return nil, fmt.Errorf("failed to match %s: %w", field, err)
	}
	ids, err := scanInts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan matches: %w", err)
	}
	return ids, nil
}

var _ secondary.DocumentRepository = (*DocumentRepository)(nil)
