// Package wire provides dependency injection for the arda application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/arda/internal/adapters/cli"
	"github.com/example/arda/internal/adapters/filesystem"
	"github.com/example/arda/internal/adapters/sqlite"
	"github.com/example/arda/internal/app"
	"github.com/example/arda/internal/config"
	"github.com/example/arda/internal/db"
	"github.com/example/arda/internal/logging"
	"github.com/example/arda/internal/ports/primary"
)

var (
	cfg             *config.Config
	logger          *logging.Logger
	database        *sql.DB
	documentService primary.DocumentService
	authorService   primary.AuthorService
	projectService  primary.ProjectService
	mergeService    primary.MergeService
	exportService   primary.ExportService
	filterService   primary.FilterService
	once            sync.Once
)

// Config returns the configuration of the library in the working directory.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the singleton logger.
func Logger() *logging.Logger {
	once.Do(initServices)
	return logger
}

// DocumentService returns the singleton DocumentService instance.
func DocumentService() primary.DocumentService {
	once.Do(initServices)
	return documentService
}

// AuthorService returns the singleton AuthorService instance.
func AuthorService() primary.AuthorService {
	once.Do(initServices)
	return authorService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// MergeService returns the singleton MergeService instance.
func MergeService() primary.MergeService {
	once.Do(initServices)
	return mergeService
}

// ExportService returns the singleton ExportService instance.
func ExportService() primary.ExportService {
	once.Do(initServices)
	return exportService
}

// FilterService returns the singleton FilterService instance.
func FilterService() primary.FilterService {
	once.Do(initServices)
	return filterService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err = config.LoadConfig(wd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = logging.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}

	// Get database connection
	database, err = db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open library (run 'arda init' first): %v", err)
	}

	workspace, err := filesystem.NewWorkspaceAdapter(cfg.BibDir)
	if err != nil {
		log.Fatalf("failed to initialize export directory: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	stores := app.Stores{
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

	// Create merge executor with injected stores
	executor := app.NewMergeExecutor(stores)

	// Create services (primary ports implementation)
	authors := app.NewAuthorService(stores, logger)
	projects := app.NewProjectService(stores, logger)
	authorService = authors
	projectService = projects
	documentService = app.NewDocumentService(stores, authors, logger)
	mergeService = app.NewMergeService(stores, executor, cfg.DuplicateFields, logger)
	exportService = app.NewExportService(stores, projects, workspace, cfg.DefaultExportFields, logger)
	filterService = app.NewFilterService(stores.Filters)
}

// Shutdown flushes the logger and closes the store if they were opened.
func Shutdown() {
	if logger != nil {
		logger.Sync()
	}
	if database != nil {
		database.Close()
	}
}

// DocumentAdapter returns a new DocumentAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func DocumentAdapter() *cliadapter.DocumentAdapter {
	return DocumentAdapterWithOutput(os.Stdout)
}

// DocumentAdapterWithOutput returns a new DocumentAdapter writing to the given output.
func DocumentAdapterWithOutput(out io.Writer) *cliadapter.DocumentAdapter {
	once.Do(initServices)
	return cliadapter.NewDocumentAdapter(documentService, authorService, out)
}

// ProjectAdapter returns a new ProjectAdapter writing to stdout.
func ProjectAdapter() *cliadapter.ProjectAdapter {
	once.Do(initServices)
	return cliadapter.NewProjectAdapter(projectService, os.Stdout)
}

// MergeAdapter returns a new MergeAdapter writing to stdout.
func MergeAdapter() *cliadapter.MergeAdapter {
	once.Do(initServices)
	return cliadapter.NewMergeAdapter(mergeService, os.Stdout)
}

// ExportAdapter returns a new ExportAdapter writing to stdout.
func ExportAdapter() *cliadapter.ExportAdapter {
	once.Do(initServices)
	return cliadapter.NewExportAdapter(exportService, os.Stdout)
}

// FilterAdapter returns a new FilterAdapter writing to stdout.
func FilterAdapter() *cliadapter.FilterAdapter {
	once.Do(initServices)
	return cliadapter.NewFilterAdapter(filterService, os.Stdout)
}
