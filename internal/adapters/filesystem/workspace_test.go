package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/arda/internal/adapters/filesystem"
)

func TestWorkspaceAdapter_WriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	ctx := context.Background()
	target := adapter.Resolve(filepath.Join("nested", "refs.bib"))

	// Missing parent directories are created
	if err := adapter.WriteFile(ctx, target, []byte("@article{a,\n}\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// A second write replaces the first
	if err := adapter.WriteFile(ctx, target, []byte("@book{b,\n}\n")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "@book{b,\n}\n" {
		t.Errorf("unexpected contents: %q", data)
	}
}

func TestWorkspaceAdapter_WriteFileCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	target := filepath.Join(tmpDir, "refs.bib")
	if err := adapter.WriteFile(ctx, target, []byte("x")); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("expected no file after cancelled write")
	}
}

func TestWorkspaceAdapter_Resolve(t *testing.T) {
	tmpDir := t.TempDir()
	adapter, err := filesystem.NewWorkspaceAdapter(tmpDir)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	home, _ := os.UserHomeDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative", "refs.bib", filepath.Join(tmpDir, "refs.bib")},
		{"absolute", "/tmp/x/../refs.bib", "/tmp/refs.bib"},
		{"home", "~/refs.bib", filepath.Join(home, "refs.bib")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewWorkspaceAdapter_DefaultsToWorkingDir(t *testing.T) {
	adapter, err := filesystem.NewWorkspaceAdapter("")
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	wd, _ := os.Getwd()
	if adapter.BibDir() != wd {
		t.Errorf("BibDir() = %q, want %q", adapter.BibDir(), wd)
	}
}
