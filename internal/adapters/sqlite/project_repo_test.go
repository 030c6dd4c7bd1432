package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/arda/internal/adapters/sqlite"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/ports/secondary"
)

func TestProjectRepository_CreateGetList(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	p := &secondary.ProjectRecord{ID: 4, Text: "Thesis", Path: "/tmp/thesis", BibPaths: "a.bib;b.bib", ExpandDefault: true}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	seedProject(t, db, 2, 4, "Chapter")

	got, err := repo.GetByID(ctx, 4)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Text != "Thesis" || got.BibPaths != "a.bib;b.bib" || !got.ExpandDefault {
		t.Errorf("GetByID() = %+v", got)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != 2 || all[1].ID != 4 {
		t.Errorf("List() order wrong: %+v", all)
	}

	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("GetByID(99) error = %v, want ErrNotFound", err)
	}
}

func TestProjectRepository_Reparenting(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	seedProject(t, db, 1, 0, "Root")
	seedProject(t, db, 2, 1, "Mid")
	seedProject(t, db, 3, 2, "Leaf A")
	seedProject(t, db, 4, 2, "Leaf B")

	n, err := repo.ReparentChildren(ctx, 2, 1)
	if err != nil {
		t.Fatalf("ReparentChildren() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ReparentChildren() moved %d, want 2", n)
	}

	if err := repo.SetParent(ctx, 4, 3); err != nil {
		t.Fatalf("SetParent() error = %v", err)
	}
	leaf, _ := repo.GetByID(ctx, 4)
	if leaf.ParentID != 3 {
		t.Errorf("ParentID = %d, want 3", leaf.ParentID)
	}

	if err := repo.SetParent(ctx, 42, 1); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("SetParent(missing) error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := repo.Exists(ctx, 2); ok {
		t.Error("project 2 still exists after Delete")
	}
}

func TestProjectRepository_MarkBibBuilt(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()
	seedProject(t, db, 1, 0, "P")

	if err := repo.MarkBibBuilt(ctx, 1, 1234.5); err != nil {
		t.Fatalf("MarkBibBuilt() error = %v", err)
	}
	got, _ := repo.GetByID(ctx, 1)
	if got.BibBuilt != 1234.5 {
		t.Errorf("BibBuilt = %v, want 1234.5", got.BibBuilt)
	}
}
