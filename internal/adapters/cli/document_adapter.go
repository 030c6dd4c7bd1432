// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/example/arda/internal/ports/primary"
)

// DocumentAdapter is a thin adapter that translates CLI operations to DocumentService calls.
// It depends only on the DocumentService interface, enabling easy testing with mocks.
type DocumentAdapter struct {
	service primary.DocumentService
	authors primary.AuthorService
	out     io.Writer
}

// NewDocumentAdapter creates a new DocumentAdapter with the given services.
func NewDocumentAdapter(service primary.DocumentService, authors primary.AuthorService, out io.Writer) *DocumentAdapter {
	return &DocumentAdapter{
		service: service,
		authors: authors,
		out:     out,
	}
}

// Add inserts a record into table.
func (a *DocumentAdapter) Add(ctx context.Context, table string, record map[string]any) error {
	res, err := a.service.Add(ctx, table, record)
	if err != nil {
		return fmt.Errorf("failed to add to %s: %w", table, err)
	}

	if res.ID != 0 {
		fmt.Fprintf(a.out, "✓ Added %s record %d\n", table, res.ID)
	} else {
		fmt.Fprintf(a.out, "✓ Added %s record\n", table)
	}
	if len(res.Unused) > 0 {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgYellow).Sprint("ignored:"), strings.Join(res.Unused, ", "))
	}
	return nil
}

// Show displays one document with its contributors and paths.
func (a *DocumentAdapter) Show(ctx context.Context, docID int) error {
	doc, found, err := a.service.GetRecord(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if !found {
		return fmt.Errorf("document %d not found", docID)
	}

	fmt.Fprintf(a.out, "\nDocument: %d\n", doc.ID)
	keys := make([]string, 0, len(doc.Fields))
	for k := range doc.Fields {
		if k != "doc_id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %-14s %v\n", k+":", doc.Fields[k])
	}
	fmt.Fprintf(a.out, "  %-14s %s\n", "modified:", ModifiedAgo(doc.ModifiedDate))

	contributors, err := a.service.Contributors(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get contributors: %w", err)
	}
	if len(contributors) > 0 {
		fmt.Fprintln(a.out, "\nContributors:")
		for _, c := range contributors {
			fmt.Fprintf(a.out, "  %-7s %s\n", c.Role, c.FullName)
		}
	}

	paths, err := a.service.Paths(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}
	if len(paths) > 0 {
		fmt.Fprintln(a.out, "\nFiles:")
		for _, p := range paths {
			fmt.Fprintf(a.out, "  %s\n", p)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// List prints matching documents as a table.
func (a *DocumentAdapter) List(ctx context.Context, filters primary.DocumentFilters) error {
	docs, err := a.service.ListDocuments(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents found")
		return nil
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"ID", "Type", "Year", "Authors", "Title", "Modified"})
	for _, d := range docs {
		year := ""
		if d.Year != nil {
			year = fmt.Sprint(*d.Year)
		}
		table.Append([]string{
			fmt.Sprint(d.ID), d.Type, year, d.AuthorLasts, StatusMark(d.Read, d.Favorite) + d.Title, ModifiedAgo(d.ModifiedDate),
		})
	}
	table.Render()
	return nil
}

// Update sets one column on the rows of table matching cond.
func (a *DocumentAdapter) Update(ctx context.Context, table string, cond map[string]any, column string, value any) error {
	n, err := a.service.Update(ctx, cond, column, value, table)
	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Updated %s on %s %s\n", column, humanize.Comma(n), plural(n, "row"))
	return nil
}

// Delete removes a document and everything referencing it.
func (a *DocumentAdapter) Delete(ctx context.Context, docID int) error {
	if err := a.service.DeleteDocument(ctx, docID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Document %d deleted\n", docID)
	return nil
}

// AddPath attaches a file to a document.
func (a *DocumentAdapter) AddPath(ctx context.Context, docID int, path string) error {
	if err := a.service.AddPath(ctx, docID, path); err != nil {
		return fmt.Errorf("failed to add path: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Attached %s to document %d\n", path, docID)
	return nil
}

// RemovePath detaches a file from a document.
func (a *DocumentAdapter) RemovePath(ctx context.Context, docID int, path string) error {
	n, err := a.service.RemovePath(ctx, docID, path)
	if err != nil {
		return fmt.Errorf("failed to remove path: %w", err)
	}
	if n == 0 {
		fmt.Fprintf(a.out, "%s document %d has no path %s\n", color.New(color.FgYellow).Sprint("!"), docID, path)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Detached %s from document %d\n", path, docID)
	return nil
}

// SetAuthors replaces a document's authors or editors.
func (a *DocumentAdapter) SetAuthors(ctx context.Context, docID int, names []string, asEditors bool) error {
	if err := a.authors.UpdateAuthors(ctx, docID, names, asEditors); err != nil {
		return fmt.Errorf("failed to set contributors: %w", err)
	}
	role := "authors"
	if asEditors {
		role = "editors"
	}
	fmt.Fprintf(a.out, "✓ Document %d now has %d %s\n", docID, len(names), role)
	return nil
}

// Table dumps one table.
func (a *DocumentAdapter) Table(ctx context.Context, name string) error {
	t, err := a.service.GetTable(ctx, name)
	if err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("unknown table %q", name)
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader(t.Columns)
	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			if v := row[c]; v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		table.Append(cells)
	}
	table.Render()
	fmt.Fprintf(a.out, "%s %s\n", humanize.Comma(int64(len(t.Rows))), plural(int64(len(t.Rows)), "row"))
	return nil
}

// ModifiedAgo renders an epoch-millisecond timestamp relative to now.
func ModifiedAgo(millis float64) string {
	if millis <= 0 {
		return ""
	}
	return humanize.Time(time.UnixMilli(int64(millis)))
}

// StatusMark prefixes a title with read and favorite markers.
func StatusMark(read, favorite bool) string {
	mark := ""
	if favorite {
		mark += color.New(color.FgHiMagenta).Sprint("★ ")
	}
	if read {
		mark += color.New(color.FgGreen).Sprint("✓ ")
	}
	return mark
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
