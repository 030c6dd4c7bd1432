// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/example/arda/internal/ports/secondary"
)

// WorkspaceAdapter implements secondary.ExportWorkspace on the local disk.
type WorkspaceAdapter struct {
	bibDir string
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter.
// Relative export paths resolve against bibDir; when bibDir is empty they
// resolve against the working directory.
func NewWorkspaceAdapter(bibDir string) (*WorkspaceAdapter, error) {
	if bibDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		bibDir = wd
	}

	abs, err := filepath.Abs(bibDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", bibDir, err)
	}
	return &WorkspaceAdapter{bibDir: abs}, nil
}

// WriteFile replaces path with data. Readers see either the old file or
// the new one, never a partial write.
func (a *WorkspaceAdapter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Resolve returns path unchanged when absolute, otherwise joined to the
// bib directory. A leading ~ expands to the home directory.
func (a *WorkspaceAdapter) Resolve(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.bibDir, path)
}

// BibDir returns the directory relative paths resolve against.
func (a *WorkspaceAdapter) BibDir() string {
	return a.bibDir
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.ExportWorkspace = (*WorkspaceAdapter)(nil)
