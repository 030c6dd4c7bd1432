package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/example/arda/internal/ports/primary"
)

// ExportAdapter is a thin adapter that translates CLI operations to ExportService calls.
type ExportAdapter struct {
	service primary.ExportService
	out     io.Writer
}

// NewExportAdapter creates a new ExportAdapter with the given service.
func NewExportAdapter(service primary.ExportService, out io.Writer) *ExportAdapter {
	return &ExportAdapter{
		service: service,
		out:     out,
	}
}

// Write exports documents to a file.
func (a *ExportAdapter) Write(ctx context.Context, docIDs []int, filename string, fields []string) error {
	res, err := a.service.Write(ctx, docIDs, filename, fields)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	a.report(res)
	return nil
}

// ExportProject writes a project's bibliography files.
func (a *ExportAdapter) ExportProject(ctx context.Context, projID int, cascade bool) error {
	res, err := a.service.ExportProject(ctx, projID, cascade)
	if err != nil {
		return fmt.Errorf("failed to export project %d: %w", projID, err)
	}
	a.report(res)
	return nil
}

func (a *ExportAdapter) report(res *primary.ExportResult) {
	for _, f := range res.Files {
		fmt.Fprintf(a.out, "✓ Wrote %d entries to %s\n", len(res.Written), f)
	}
	warn := color.New(color.FgYellow).Sprint("!")
	for _, id := range res.Skipped {
		fmt.Fprintf(a.out, "%s document %d not found, skipped\n", warn, id)
	}

	var merr *multierror.Error
	if errors.As(res.Warnings, &merr) {
		for _, w := range merr.Errors {
			fmt.Fprintf(a.out, "%s %v\n", warn, w)
		}
	} else if res.Warnings != nil {
		fmt.Fprintf(a.out, "%s %v\n", warn, res.Warnings)
	}
}
