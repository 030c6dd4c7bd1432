package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/example/arda/internal/ports/primary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		out:     out,
	}
}

// List prints every project as a table.
func (a *ProjectAdapter) List(ctx context.Context) error {
	projects, err := a.service.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects found")
		return nil
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"ID", "Parent", "Project", "Path", "BibTeX Built"})
	for _, p := range projects {
		table.Append([]string{
			fmt.Sprint(p.ID), fmt.Sprint(p.ParentID), p.Text, p.Path, ModifiedAgo(p.BibBuilt),
		})
	}
	table.Render()
	return nil
}

// Tree prints the project forest, children indented under parents.
func (a *ProjectAdapter) Tree(ctx context.Context) error {
	projects, err := a.service.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	levels, err := a.service.Levels(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute levels: %w", err)
	}

	children := map[int][]*primary.Project{}
	for _, p := range projects {
		children[p.ParentID] = append(children[p.ParentID], p)
	}

	var walk func(parent int)
	walk = func(parent int) {
		for _, p := range children[parent] {
			fmt.Fprintf(a.out, "%s%s (%d)\n", strings.Repeat("  ", levels[p.ID]), p.Text, p.ID)
			walk(p.ID)
		}
	}
	walk(0)
	return nil
}

// Path prints a project's full path.
func (a *ProjectAdapter) Path(ctx context.Context, projID, ignoreTopN int, delimiter string) error {
	path, err := a.service.FullPath(ctx, projID, ignoreTopN, delimiter)
	if err != nil {
		return fmt.Errorf("failed to get path: %w", err)
	}
	fmt.Fprintln(a.out, path)
	return nil
}

// Delete removes a project, handing its contents to its parent.
func (a *ProjectAdapter) Delete(ctx context.Context, projID int, childrenAction string) error {
	if err := a.service.Delete(ctx, projID, childrenAction); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Project %d deleted\n", projID)
	return nil
}

// Move reparents a project.
func (a *ProjectAdapter) Move(ctx context.Context, projID, newParentID int) error {
	if err := a.service.Move(ctx, projID, newParentID); err != nil {
		return fmt.Errorf("failed to move project: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Project %d moved under %d\n", projID, newParentID)
	return nil
}

// Member adds or removes a document from a project.
func (a *ProjectAdapter) Member(ctx context.Context, docID, projID int, action string) error {
	if err := a.service.AddRemoveMembership(ctx, docID, projID, action); err != nil {
		return fmt.Errorf("failed to %s membership: %w", action, err)
	}
	verb := "added to"
	if action == "remove" {
		verb = "removed from"
	}
	fmt.Fprintf(a.out, "✓ Document %d %s project %d\n", docID, verb, projID)
	return nil
}

// Docs prints the ids of the documents in the given projects.
func (a *ProjectAdapter) Docs(ctx context.Context, projIDs []int, cascade bool) error {
	ids, err := a.service.DocsIn(ctx, projIDs, cascade)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No documents found")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(a.out, id)
	}
	return nil
}

// SetNote stores a project note on a document.
func (a *ProjectAdapter) SetNote(ctx context.Context, projID, docID int, notes string) error {
	if err := a.service.SetNote(ctx, projID, docID, notes); err != nil {
		return fmt.Errorf("failed to set note: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Note saved for document %d in project %d\n", docID, projID)
	return nil
}

// Notes prints a project's notes.
func (a *ProjectAdapter) Notes(ctx context.Context, projID int) error {
	notes, err := a.service.Notes(ctx, projID)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes found")
		return nil
	}
	for _, n := range notes {
		fmt.Fprintf(a.out, "%-6d %s\n", n.DocID, n.Notes)
	}
	return nil
}
