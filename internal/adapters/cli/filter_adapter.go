package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/primary"
)

// FilterAdapter is a thin adapter that translates CLI operations to FilterService calls.
type FilterAdapter struct {
	service primary.FilterService
	out     io.Writer
}

// NewFilterAdapter creates a new FilterAdapter with the given service.
func NewFilterAdapter(service primary.FilterService, out io.Writer) *FilterAdapter {
	return &FilterAdapter{
		service: service,
		out:     out,
	}
}

// Create saves a filter.
func (a *FilterAdapter) Create(ctx context.Context, name, field, value string) error {
	f, err := a.service.CreateFilter(ctx, primary.CreateFilterRequest{Name: name, Field: field, Value: value})
	if err != nil {
		return fmt.Errorf("failed to create filter: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Created filter %d: %s (%s = %q)\n", f.ID, f.Name, f.Field, f.Value)
	return nil
}

// List prints saved filters.
func (a *FilterAdapter) List(ctx context.Context) error {
	filters, err := a.service.ListFilters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list filters: %w", err)
	}
	if len(filters) == 0 {
		fmt.Fprintln(a.out, "No filters found")
		return nil
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"ID", "Name", "Field", "Value"})
	for _, f := range filters {
		table.Append([]string{fmt.Sprint(f.ID), f.Name, fields.HeaderFor(fields.TableDocuments, f.Field), f.Value})
	}
	table.Render()
	return nil
}

// Delete removes a saved filter.
func (a *FilterAdapter) Delete(ctx context.Context, filterID int) error {
	if err := a.service.DeleteFilter(ctx, filterID); err != nil {
		return fmt.Errorf("failed to delete filter: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Filter %d deleted\n", filterID)
	return nil
}

// Fields prints the field registry of one table, or of every table.
func Fields(out io.Writer, table string) error {
	tables := fields.Tables()
	if table != "" {
		if !fields.KnownTable(table) {
			return fmt.Errorf("unknown table %q", table)
		}
		tables = []string{table}
	}

	tw := tablewriter.NewWriter(out)
	tw.SetHeader([]string{"Table", "Field", "Header", "Type", "BibTeX"})
	for _, t := range tables {
		for _, e := range fields.Entries(t) {
			bib := ""
			if e.IncludeBib {
				bib = "yes"
			}
			tw.Append([]string{e.Table, e.Field, e.Header, string(e.Type), bib})
		}
	}
	tw.Render()
	return nil
}
