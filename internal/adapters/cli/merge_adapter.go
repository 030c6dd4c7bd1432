package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/arda/internal/ports/primary"
)

// MergeAdapter is a thin adapter that translates CLI operations to MergeService calls.
type MergeAdapter struct {
	service primary.MergeService
	out     io.Writer
}

// NewMergeAdapter creates a new MergeAdapter with the given service.
func NewMergeAdapter(service primary.MergeService, out io.Writer) *MergeAdapter {
	return &MergeAdapter{
		service: service,
		out:     out,
	}
}

// FindDuplicates prints the documents that duplicate query.
func (a *MergeAdapter) FindDuplicates(ctx context.Context, query primary.DuplicateQuery) error {
	ids, err := a.service.FindDuplicates(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to find duplicates: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No duplicates found")
		return nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgYellow).Sprintf("%d possible duplicate(s):", len(ids)), strings.Join(parts, ", "))
	return nil
}

// Merge folds one document into another.
func (a *MergeAdapter) Merge(ctx context.Context, req primary.MergeRequest) error {
	res, err := a.service.Merge(ctx, req)
	if err != nil {
		return err
	}

	secondary := req.DocIDs[0]
	if secondary == req.PrimaryID {
		secondary = req.DocIDs[1]
	}
	fmt.Fprintf(a.out, "✓ Merged document %d into %d\n", secondary, res.PrimaryID)
	if len(res.Ignored) > 0 {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgYellow).Sprint("ignored:"), strings.Join(res.Ignored, ", "))
	}
	return nil
}
