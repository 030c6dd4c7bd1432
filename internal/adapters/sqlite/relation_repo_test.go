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

func TestContributorRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewContributorRepository(db)
	ctx := context.Background()

	rows := []*secondary.ContributorRecord{
		{DocID: 1, Contribution: "Author", LastName: "Smith", FirstName: "John", FullName: "John Smith", Order: 0},
		{DocID: 1, Contribution: "Author", LastName: "Doe", FirstName: "Jane", FullName: "Jane Doe", Order: 1},
		{DocID: 1, Contribution: "Editor", LastName: "Roe", FirstName: "Al", FullName: "Al Roe", Order: 0},
	}
	for _, r := range rows {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	authors, err := repo.ListByDocument(ctx, 1, "Author")
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if diff := cmp.Diff(rows[:2], authors); diff != "" {
		t.Errorf("ListByDocument() mismatch (-want +got):\n%s", diff)
	}

	all, _ := repo.ListByDocument(ctx, 1, "")
	if len(all) != 3 {
		t.Errorf("ListByDocument(any role) = %d rows, want 3", len(all))
	}

	if err := repo.DeleteByRole(ctx, 1, "Author"); err != nil {
		t.Fatalf("DeleteByRole() error = %v", err)
	}
	left, _ := repo.ListByDocument(ctx, 1, "")
	if len(left) != 1 || left[0].Contribution != "Editor" {
		t.Errorf("after DeleteByRole: %+v", left)
	}
}

func TestMembershipRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewMembershipRepository(db)
	ctx := context.Background()

	for _, m := range [][2]int{{1, 10}, {1, 10}, {2, 10}, {3, 11}, {1, 11}} {
		if err := repo.Add(ctx, m[0], m[1]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if n := countRows(t, db, "Doc_Proj", 1); n != 3 {
		t.Errorf("duplicate memberships not kept: %d rows", n)
	}

	docs, err := repo.DocsIn(ctx, []int{10, 11})
	if err != nil {
		t.Fatalf("DocsIn() error = %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, docs); diff != "" {
		t.Errorf("DocsIn() mismatch (-want +got):\n%s", diff)
	}

	projs, _ := repo.ProjectsOf(ctx, 1)
	if diff := cmp.Diff([]int{10, 11}, projs); diff != "" {
		t.Errorf("ProjectsOf() mismatch (-want +got):\n%s", diff)
	}

	n, err := repo.Remove(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Remove() deleted %d, want 2", n)
	}

	if got, _ := repo.DocsIn(ctx, nil); got != nil {
		t.Errorf("DocsIn(nil) = %v, want nil", got)
	}
}

func TestPathRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPathRepository(db)
	ctx := context.Background()

	for _, p := range []string{"/b.pdf", "/a.pdf", "/b.pdf"} {
		if err := repo.Add(ctx, 5, p); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	paths, err := repo.ListByDocument(ctx, 5)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/b.pdf", "/a.pdf", "/b.pdf"}, paths); diff != "" {
		t.Errorf("ListByDocument() mismatch (-want +got):\n%s", diff)
	}

	n, _ := repo.Remove(ctx, 5, "/b.pdf")
	if n != 2 {
		t.Errorf("Remove() deleted %d, want 2", n)
	}
}

func TestProjectNoteRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectNoteRepository(db)
	ctx := context.Background()

	if err := repo.Set(ctx, &secondary.ProjectNoteRecord{ProjID: 1, DocID: 2, Notes: "first"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set(ctx, &secondary.ProjectNoteRecord{ProjID: 1, DocID: 2, Notes: "second"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := repo.Set(ctx, &secondary.ProjectNoteRecord{ProjID: 1, DocID: 1, Notes: "other"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	notes, err := repo.ListByProject(ctx, 1)
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	want := []*secondary.ProjectNoteRecord{
		{ProjID: 1, DocID: 1, Notes: "other"},
		{ProjID: 1, DocID: 2, Notes: "second"},
	}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("ListByProject() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFilterRepository(db)
	ctx := context.Background()

	f := &secondary.FilterRecord{Name: "unread", Field: "read", Value: "0"}
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.ID == 0 {
		t.Fatal("Create() did not assign an id")
	}

	got, err := repo.GetByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("GetByID() mismatch (-want +got):\n%s", diff)
	}

	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Errorf("List() = %d filters, want 1", len(list))
	}

	if err := repo.Delete(ctx, f.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, f.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
