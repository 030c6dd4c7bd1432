package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/arda/internal/ports/primary"
)

// mockDocumentService implements primary.DocumentService for testing
type mockDocumentService struct {
	addFn       func(ctx context.Context, table string, record map[string]any) (*primary.AddResult, error)
	getRecordFn func(ctx context.Context, docID int) (*primary.Document, bool, error)
	listFn      func(ctx context.Context, filters primary.DocumentFilters) ([]*primary.Document, error)
	getTableFn  func(ctx context.Context, name string) (*primary.Table, error)
	removed     int64

	// Track calls for verification
	lastFilters primary.DocumentFilters
	lastUpdate  []any
}

func (m *mockDocumentService) Add(ctx context.Context, table string, record map[string]any) (*primary.AddResult, error) {
	if m.addFn != nil {
		return m.addFn(ctx, table, record)
	}
	return &primary.AddResult{ID: 1}, nil
}

func (m *mockDocumentService) GetTable(ctx context.Context, name string) (*primary.Table, error) {
	if m.getTableFn != nil {
		return m.getTableFn(ctx, name)
	}
	return &primary.Table{Name: name}, nil
}

func (m *mockDocumentService) GetRecord(ctx context.Context, docID int) (*primary.Document, bool, error) {
	if m.getRecordFn != nil {
		return m.getRecordFn(ctx, docID)
	}
	return nil, false, nil
}

func (m *mockDocumentService) Update(ctx context.Context, cond map[string]any, column string, value any, table string) (int64, error) {
	m.lastUpdate = []any{cond, column, value, table}
	return 2, nil
}

func (m *mockDocumentService) DeleteDocument(ctx context.Context, docID int) error {
	return nil
}

func (m *mockDocumentService) ListDocuments(ctx context.Context, filters primary.DocumentFilters) ([]*primary.Document, error) {
	m.lastFilters = filters
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockDocumentService) AddPath(ctx context.Context, docID int, path string) error {
	return nil
}

func (m *mockDocumentService) RemovePath(ctx context.Context, docID int, path string) (int64, error) {
	return m.removed, nil
}

func (m *mockDocumentService) Paths(ctx context.Context, docID int) ([]string, error) {
	return []string{"papers/a.pdf"}, nil
}

func (m *mockDocumentService) Contributors(ctx context.Context, docID int) ([]*primary.Contributor, error) {
	return []*primary.Contributor{{Role: "Author", FullName: "Ada Lovelace"}}, nil
}

// mockAuthorService implements primary.AuthorService for testing
type mockAuthorService struct {
	err       error
	lastNames any
}

func (m *mockAuthorService) UpdateAuthors(ctx context.Context, docID int, authors any, asEditors bool) error {
	m.lastNames = authors
	return m.err
}

func newTestDocumentAdapter() (*DocumentAdapter, *mockDocumentService, *mockAuthorService, *bytes.Buffer) {
	svc := &mockDocumentService{}
	authors := &mockAuthorService{}
	out := &bytes.Buffer{}
	return NewDocumentAdapter(svc, authors, out), svc, authors, out
}

func TestDocumentAdapter_Add(t *testing.T) {
	adapter, svc, _, out := newTestDocumentAdapter()
	svc.addFn = func(ctx context.Context, table string, record map[string]any) (*primary.AddResult, error) {
		return &primary.AddResult{ID: 7, Unused: []string{"shelf"}}, nil
	}

	if err := adapter.Add(context.Background(), "Documents", map[string]any{"title": "X", "shelf": 1}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !strings.Contains(out.String(), "✓ Added Documents record 7") {
		t.Errorf("output missing confirmation: %q", out.String())
	}
	if !strings.Contains(out.String(), "shelf") {
		t.Errorf("output missing ignored keys: %q", out.String())
	}
}

func TestDocumentAdapter_AddError(t *testing.T) {
	adapter, svc, _, _ := newTestDocumentAdapter()
	svc.addFn = func(ctx context.Context, table string, record map[string]any) (*primary.AddResult, error) {
		return nil, errors.New("doc_id 1 already used")
	}

	err := adapter.Add(context.Background(), "Documents", nil)
	if err == nil || !strings.Contains(err.Error(), "already used") {
		t.Errorf("Add() error = %v", err)
	}
}

func TestDocumentAdapter_Show(t *testing.T) {
	adapter, svc, _, out := newTestDocumentAdapter()
	svc.getRecordFn = func(ctx context.Context, docID int) (*primary.Document, bool, error) {
		return &primary.Document{
			ID:     docID,
			Fields: map[string]any{"doc_id": docID, "title": "Notes on the Engine", "year": 1843},
		}, true, nil
	}

	if err := adapter.Show(context.Background(), 3); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	for _, want := range []string{"Document: 3", "Notes on the Engine", "1843", "Ada Lovelace", "papers/a.pdf"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDocumentAdapter_ShowNotFound(t *testing.T) {
	adapter, _, _, _ := newTestDocumentAdapter()

	if err := adapter.Show(context.Background(), 404); err == nil {
		t.Error("expected error for missing document")
	}
}

func TestDocumentAdapter_List(t *testing.T) {
	adapter, svc, _, out := newTestDocumentAdapter()
	year := 1970
	svc.listFn = func(ctx context.Context, filters primary.DocumentFilters) ([]*primary.Document, error) {
		return []*primary.Document{{ID: 1, Type: "article", Year: &year, AuthorLasts: "Codd", Title: "Relational Model"}}, nil
	}

	filters := primary.DocumentFilters{Search: "codd", Limit: 5}
	if err := adapter.List(context.Background(), filters); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if svc.lastFilters.Search != "codd" || svc.lastFilters.Limit != 5 {
		t.Errorf("filters not passed through: %+v", svc.lastFilters)
	}
	for _, want := range []string{"Relational Model", "1970", "Codd"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDocumentAdapter_ListEmpty(t *testing.T) {
	adapter, _, _, out := newTestDocumentAdapter()

	if err := adapter.List(context.Background(), primary.DocumentFilters{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !strings.Contains(out.String(), "No documents found") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDocumentAdapter_Update(t *testing.T) {
	adapter, svc, _, out := newTestDocumentAdapter()

	err := adapter.Update(context.Background(), "Documents", map[string]any{"year": 1970}, "read", "1")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if svc.lastUpdate[1] != "read" || svc.lastUpdate[3] != "Documents" {
		t.Errorf("unexpected call: %v", svc.lastUpdate)
	}
	if !strings.Contains(out.String(), "2 rows") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDocumentAdapter_RemovePathMissing(t *testing.T) {
	adapter, _, _, out := newTestDocumentAdapter()

	if err := adapter.RemovePath(context.Background(), 1, "nope.pdf"); err != nil {
		t.Fatalf("RemovePath() error = %v", err)
	}
	if !strings.Contains(out.String(), "has no path nope.pdf") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDocumentAdapter_SetAuthors(t *testing.T) {
	adapter, _, authors, out := newTestDocumentAdapter()

	names := []string{"Knuth, Donald", "Lovelace, Ada"}
	if err := adapter.SetAuthors(context.Background(), 2, names, false); err != nil {
		t.Fatalf("SetAuthors() error = %v", err)
	}
	if got, ok := authors.lastNames.([]string); !ok || len(got) != 2 {
		t.Errorf("names not passed through: %v", authors.lastNames)
	}
	if !strings.Contains(out.String(), "2 authors") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDocumentAdapter_Table(t *testing.T) {
	adapter, svc, _, out := newTestDocumentAdapter()
	svc.getTableFn = func(ctx context.Context, name string) (*primary.Table, error) {
		if name != "Doc_Paths" {
			// Unrecognized names come back empty, not as an error.
			return &primary.Table{Name: name}, nil
		}
		return &primary.Table{
			Name:    name,
			Columns: []string{"doc_id", "full_path"},
			Rows:    []map[string]any{{"doc_id": int64(1), "full_path": "a.pdf"}},
		}, nil
	}

	if err := adapter.Table(context.Background(), "Doc_Paths"); err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	if !strings.Contains(out.String(), "a.pdf") || !strings.Contains(out.String(), "1 row\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if err := adapter.Table(context.Background(), "Shelves"); err == nil {
		t.Error("expected error for unknown table")
	}
	if out.Len() != 0 {
		t.Errorf("unknown table printed output:\n%s", out.String())
	}
}

func TestModifiedAgo(t *testing.T) {
	if got := ModifiedAgo(0); got != "" {
		t.Errorf("ModifiedAgo(0) = %q", got)
	}
	if got := ModifiedAgo(1); !strings.HasSuffix(got, "ago") {
		t.Errorf("ModifiedAgo(1) = %q", got)
	}
}
