package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/arda/internal/adapters/sqlite"
	"github.com/example/arda/internal/core/errs"
	"github.com/example/arda/internal/ports/secondary"
)

func TestRecordStore_InsertSelect(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewRecordStore(db)
	ctx := context.Background()

	if err := store.Insert(ctx, "Doc_Paths", secondary.Row{"doc_id": 4, "full_path": "/a.pdf"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := store.Insert(ctx, "Doc_Paths", secondary.Row{"doc_id": 4, "full_path": "/a.pdf"}); err != nil {
		t.Fatalf("Insert() duplicate error = %v", err)
	}
	if err := store.Insert(ctx, "Doc_Paths", secondary.Row{"doc_id": 5, "full_path": "/b.pdf"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	rows, err := store.Select(ctx, "Doc_Paths", secondary.Cond{"doc_id": 4})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["full_path"] != "/a.pdf" {
		t.Errorf("full_path = %v, want /a.pdf", rows[0]["full_path"])
	}
	if rows[0]["doc_id"] != int64(4) {
		t.Errorf("doc_id = %#v, want int64(4)", rows[0]["doc_id"])
	}

	all, err := store.FetchAll(ctx, "Doc_Paths")
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("FetchAll() returned %d rows, want 3", len(all))
	}
}

func TestRecordStore_UpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewRecordStore(db)
	ctx := context.Background()

	seedDocument(t, db, 1, "One")
	seedDocument(t, db, 2, "Two")

	n, err := store.Update(ctx, "Documents", secondary.Cond{"doc_id": 1}, secondary.Row{"journal": "J"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Update() affected %d rows, want 1", n)
	}

	n, err = store.Update(ctx, "Documents", secondary.Cond{"doc_type": "article", "journal": nil}, secondary.Row{"journal": "K"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Update() with IS NULL affected %d rows, want 1", n)
	}

	n, err = store.Delete(ctx, "Documents", secondary.Cond{"journal": "J"})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Delete() affected %d rows, want 1", n)
	}

	rows, _ := store.FetchAll(ctx, "Documents")
	if len(rows) != 1 || rows[0]["title"] != "Two" {
		t.Errorf("unexpected remaining rows: %v", rows)
	}
}

func TestRecordStore_RefusesUnknownNames(t *testing.T) {
	store := sqlite.NewRecordStore(setupTestDB(t))
	ctx := context.Background()

	if _, err := store.FetchAll(ctx, "sqlite_master"); !errors.Is(err, errs.ErrPrecondition) {
		t.Errorf("FetchAll(unknown) error = %v, want ErrPrecondition", err)
	}
	if err := store.Insert(ctx, "Documents", secondary.Row{"title; DROP": "x"}); !errors.Is(err, errs.ErrPrecondition) {
		t.Errorf("Insert(bad column) error = %v, want ErrPrecondition", err)
	}
	if _, err := store.Update(ctx, "Documents", secondary.Cond{"nope": 1}, secondary.Row{"title": "x"}); !errors.Is(err, errs.ErrPrecondition) {
		t.Errorf("Update(bad cond) error = %v, want ErrPrecondition", err)
	}
}

func TestRecordStore_MaxID(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewRecordStore(db)
	ctx := context.Background()

	got, err := store.MaxID(ctx, "doc_id", "Documents", "Doc_Paths")
	if err != nil {
		t.Fatalf("MaxID() error = %v", err)
	}
	if got != 0 {
		t.Errorf("MaxID() on empty tables = %d, want 0", got)
	}

	seedDocument(t, db, 3, "")
	if err := store.Insert(ctx, "Doc_Paths", secondary.Row{"doc_id": 9, "full_path": "/orphan"}); err != nil {
		t.Fatal(err)
	}

	got, err = store.MaxID(ctx, "doc_id", "Documents", "Doc_Paths", "Doc_Proj")
	if err != nil {
		t.Fatalf("MaxID() error = %v", err)
	}
	if got != 9 {
		t.Errorf("MaxID() = %d, want 9", got)
	}
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewRecordStore(db)
	tx := sqlite.NewTransactor(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := store.Insert(ctx, "Doc_Paths", secondary.Row{"doc_id": 1, "full_path": "/x"}); err != nil {
			return err
		}
		// Nested calls join the outer transaction.
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := store.Insert(ctx, "Doc_Proj", secondary.Row{"doc_id": 1, "proj_id": 2}); err != nil {
				return err
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithinTx() error = %v, want boom", err)
	}

	if n := countRows(t, db, "Doc_Paths", 1); n != 0 {
		t.Errorf("Doc_Paths rows after rollback = %d, want 0", n)
	}
	if n := countRows(t, db, "Doc_Proj", 1); n != 0 {
		t.Errorf("Doc_Proj rows after rollback = %d, want 0", n)
	}
}

func TestTransactor_Commits(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewRecordStore(db)
	tx := sqlite.NewTransactor(db)
	ctx := context.Background()

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		return store.Insert(ctx, "Doc_Paths", secondary.Row{"doc_id": 1, "full_path": "/x"})
	})
	if err != nil {
		t.Fatalf("WithinTx() error = %v", err)
	}
	if n := countRows(t, db, "Doc_Paths", 1); n != 1 {
		t.Errorf("Doc_Paths rows = %d, want 1", n)
	}
}
