package secondary

import "context"

// ExportWorkspace defines the secondary port for writing export files.
type ExportWorkspace interface {
	// WriteFile replaces path with data atomically, creating parent
	// directories as needed.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Resolve makes a relative path absolute against the export directory.
	// Absolute paths are returned cleaned.
	Resolve(path string) string
}
