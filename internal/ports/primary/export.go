package primary

import "context"

// ExportService defines the primary port for BibTeX export.
type ExportService interface {
	// Write exports docIDs, in order, to filename. An empty fields list
	// exports the default BibTeX fields.
	Write(ctx context.Context, docIDs []int, filename string, fields []string) (*ExportResult, error)

	// ExportProject writes a project's documents to its own .bib file and
	// to each of its extra bib paths, then stamps bib_built.
	ExportProject(ctx context.Context, projID int, cascade bool) (*ExportResult, error)
}

// ExportResult reports what an export wrote.
type ExportResult struct {
	Files   []string
	Written []int
	Skipped []int
	// Warnings aggregates per-field formatting problems; nil when clean.
	Warnings error
}
