package app

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/arda/internal/adapters/sqlite"
	"github.com/example/arda/internal/db"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/secondary"
)

var fixedNow = time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)

// testEnv wires every service against a fresh in-memory store.
type testEnv struct {
	db       *sql.DB
	stores   Stores
	logs     *observer.ObservedLogs
	docs     *DocumentServiceImpl
	authors  *AuthorServiceImpl
	projects *ProjectServiceImpl
	merges   *MergeServiceImpl
	exports  *ExportServiceImpl
	filters  *FilterServiceImpl
	bib      *mockExportWorkspace
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	log := logging.FromZap(zap.New(core))

	stores := Stores{
		Tx:           sqlite.NewTransactor(database),
		Records:      sqlite.NewRecordStore(database),
		Documents:    sqlite.NewDocumentRepository(database),
		Contributors: sqlite.NewContributorRepository(database),
		Projects:     sqlite.NewProjectRepository(database),
		Memberships:  sqlite.NewMembershipRepository(database),
		Paths:        sqlite.NewPathRepository(database),
		Notes:        sqlite.NewProjectNoteRepository(database),
		Filters:      sqlite.NewFilterRepository(database),
	}

	clock := func() time.Time { return fixedNow }

	authors := NewAuthorService(stores, log)
	authors.now = clock
	docs := NewDocumentService(stores, authors, log)
	docs.now = clock
	projects := NewProjectService(stores, log)
	executor := NewMergeExecutor(stores)
	executor.now = clock
	bib := newMockExportWorkspace()
	exports := NewExportService(stores, projects, bib, nil, log)
	exports.now = clock

	return &testEnv{
		db:       database,
		stores:   stores,
		logs:     logs,
		docs:     docs,
		authors:  authors,
		projects: projects,
		merges:   NewMergeService(stores, executor, nil, log),
		exports:  exports,
		filters:  NewFilterService(stores.Filters),
		bib:      bib,
	}
}

// addDoc adds a Documents record and returns its id.
func (e *testEnv) addDoc(t *testing.T, record map[string]any) int {
	t.Helper()
	res, err := e.docs.Add(context.Background(), "Documents", record)
	if err != nil {
		t.Fatalf("Add(Documents) error = %v", err)
	}
	return res.ID
}

// addProject adds a project under parentID and returns its id.
func (e *testEnv) addProject(t *testing.T, text string, parentID int) int {
	t.Helper()
	res, err := e.docs.Add(context.Background(), "Projects", map[string]any{"proj_text": text, "parent_id": parentID})
	if err != nil {
		t.Fatalf("Add(Projects) error = %v", err)
	}
	return res.ID
}

// countRows counts rows of table whose doc_id is docID.
func (e *testEnv) countRows(t *testing.T, table string, docID int) int {
	t.Helper()
	rows, err := e.stores.Records.Select(context.Background(), table, secondary.Cond{"doc_id": docID})
	if err != nil {
		t.Fatalf("Select(%s) error = %v", table, err)
	}
	return len(rows)
}

// warnings returns the messages logged at warn level.
func (e *testEnv) warnings() []string {
	var out []string
	for _, entry := range e.logs.FilterLevelExact(zapcore.WarnLevel).All() {
		out = append(out, entry.Message)
	}
	return out
}

// mockExportWorkspace implements secondary.ExportWorkspace in memory.
type mockExportWorkspace struct {
	files    map[string][]byte
	writeErr error
}

func newMockExportWorkspace() *mockExportWorkspace {
	return &mockExportWorkspace{files: make(map[string][]byte)}
}

func (m *mockExportWorkspace) WriteFile(ctx context.Context, path string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *mockExportWorkspace) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join("/bib", path)
}

var _ secondary.ExportWorkspace = (*mockExportWorkspace)(nil)
