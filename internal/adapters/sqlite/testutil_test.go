// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the test schema is loaded. Tests use
// db.GetSchemaSQL() so they run against the same tables the store creates.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/arda/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a fresh database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedDocument inserts a document and returns its ID.
func seedDocument(t *testing.T, db *sql.DB, id int, title string) int {
	t.Helper()
	if title == "" {
		title = "Test Document"
	}
	_, err := db.Exec(`INSERT INTO "Documents" (doc_id, title, doc_type, read, favorite) VALUES (?, ?, 'article', 0, 0)`, id, title)
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return id
}

// seedProject inserts a project and returns its ID.
func seedProject(t *testing.T, db *sql.DB, id, parentID int, text string) int {
	t.Helper()
	_, err := db.Exec(`INSERT INTO "Projects" (proj_id, proj_text, parent_id) VALUES (?, ?, ?)`, id, text, parentID)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// countRows returns the number of rows in table with doc_id = docID.
func countRows(t *testing.T, db *sql.DB, table string, docID int) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "`+table+`" WHERE doc_id = ?`, docID).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
