package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/arda/internal/adapters/sqlite"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/ports/secondary"
)

func TestDocumentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDocumentRepository(db)
	ctx := context.Background()

	year := 1970
	doc := &secondary.DocumentRecord{
		ID:           7,
		DocType:      "article",
		Title:        "A Relational Model",
		Year:         &year,
		Keyword:      "db;theory",
		Read:         true,
		AddDate:      20240102,
		ModifiedDate: 1704153600000,
	}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("GetByID() mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentRepository_NullColumnsReadAsZero(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDocumentRepository(db)

	if _, err := db.Exec(`INSERT INTO "Documents" (doc_id, title) VALUES (3, 'bare')`); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Year != nil {
		t.Errorf("Year = %v, want nil", *got.Year)
	}
	if got.Journal != "" || got.Read {
		t.Errorf("expected zero values, got journal=%q read=%v", got.Journal, got.Read)
	}
}

func TestDocumentRepository_GetByID_NotFound(t *testing.T) {
	repo := sqlite.NewDocumentRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDocumentRepository(db)
	ctx := context.Background()
	seedDocument(t, db, 1, "")

	if ok, err := repo.Exists(ctx, 1); err != nil || !ok {
		t.Errorf("Exists(1) = %v, %v; want true", ok, err)
	}
	if ok, err := repo.Exists(ctx, 2); err != nil || ok {
		t.Errorf("Exists(2) = %v, %v; want false", ok, err)
	}
}

func TestDocumentRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDocumentRepository(db)
	ctx := context.Background()

	seedDocument(t, db, 1, "Graph Databases")
	seedDocument(t, db, 2, "Relational Theory")
	seedDocument(t, db, 3, "graph theory primer")
	if _, err := db.Exec(`UPDATE "Documents" SET doc_type = 'book' WHERE doc_id = 3`); err != nil {
		t.Fatal(err)
	}

	ids := func(docs []*secondary.DocumentRecord) []int {
		out := []int{}
		for _, d := range docs {
			out = append(out, d.ID)
		}
		return out
	}

	tests := []struct {
		name  string
		query secondary.DocumentQuery
		want  []int
	}{
		{"all", secondary.DocumentQuery{}, []int{1, 2, 3}},
		{"ids", secondary.DocumentQuery{IDs: []int{3, 1}}, []int{1, 3}},
		{"empty ids", secondary.DocumentQuery{IDs: []int{}}, []int{}},
		{"search case-insensitive", secondary.DocumentQuery{Search: "GRAPH", SearchFields: []string{"title"}}, []int{1, 3}},
		{"equals", secondary.DocumentQuery{Equals: map[string]any{"doc_type": "book"}}, []int{3}},
		{"combined", secondary.DocumentQuery{Search: "theory", SearchFields: []string{"title"}, Equals: map[string]any{"doc_type": "article"}}, []int{2}},
		{"limit", secondary.DocumentQuery{Limit: 2}, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := repo.List(ctx, tt.query)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, ids(docs)); diff != "" {
				t.Errorf("List() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDocumentRepository_MatchField(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewDocumentRepository(db)
	ctx := context.Background()

	seedDocument(t, db, 1, "Same")
	seedDocument(t, db, 2, "Other")
	seedDocument(t, db, 3, "Same")

	got, err := repo.MatchField(ctx, "title", "Same")
	if err != nil {
		t.Fatalf("MatchField() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 3}, got); diff != "" {
		t.Errorf("MatchField() mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.MatchField(ctx, "no_such", "x"); !errors.Is(err, errs.ErrPrecondition) {
		t.Errorf("MatchField(unknown) error = %v, want ErrPrecondition", err)
	}
}
