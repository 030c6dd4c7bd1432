package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/arda/internal/core/fields"
)

func TestCreate_NewStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "arda.db")

	database, err := Create(ctx, path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer database.Close()

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM "Fields"`).Scan(&count); err != nil {
		t.Fatalf("count fields: %v", err)
	}
	if count != len(fields.All()) {
		t.Errorf("Fields rows = %d, want %d", count, len(fields.All()))
	}

	for _, table := range fields.Tables() {
		var name string
		err := database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestCreate_RefusesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arda.db")
	if err := os.WriteFile(path, []byte("not empty"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Create(context.Background(), path)
	if !errors.Is(err, ErrStoreExists) {
		t.Errorf("Create() error = %v, want ErrStoreExists", err)
	}
}

func TestCreate_AcceptsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arda.db")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	database, err := Create(context.Background(), path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	database.Close()
}

func TestOpen_MissingStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := Open(path)
	if !errors.Is(err, ErrStoreMissing) {
		t.Errorf("Open() error = %v, want ErrStoreMissing", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("Open() created the missing store")
	}
}

func TestOpen_ExistingStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "arda.db")

	created, err := Create(ctx, path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := created.Exec(`INSERT INTO "Documents" (doc_id, title) VALUES (1, 'kept')`); err != nil {
		t.Fatal(err)
	}
	created.Close()

	opened, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer opened.Close()

	var title string
	if err := opened.QueryRow(`SELECT title FROM "Documents" WHERE doc_id = 1`).Scan(&title); err != nil {
		t.Fatalf("query: %v", err)
	}
	if title != "kept" {
		t.Errorf("title = %q, want kept", title)
	}
}

func TestGetSchemaSQL(t *testing.T) {
	schema := GetSchemaSQL()
	for _, want := range []string{
		`"doc_id" INTEGER PRIMARY KEY`,
		`"proj_text" TEXT NOT NULL`,
		`"modified_date" REAL`,
		`CREATE INDEX IF NOT EXISTS idx_doc_auth_doc_id`,
	} {
		if !strings.Contains(schema, want) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestSeedFixtures(t *testing.T) {
	ctx := context.Background()
	database, err := OpenMemory(ctx)
	if err != nil {
		t.Fatalf("OpenMemory() error = %v", err)
	}
	defer database.Close()

	if err := SeedFixtures(ctx, database); err != nil {
		t.Fatalf("SeedFixtures() error = %v", err)
	}

	var docs int
	if err := database.QueryRow(`SELECT COUNT(*) FROM "Documents"`).Scan(&docs); err != nil {
		t.Fatal(err)
	}
	if docs != 3 {
		t.Errorf("documents = %d, want 3", docs)
	}
}
