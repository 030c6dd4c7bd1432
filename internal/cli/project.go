package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/core/project"
	"github.com/example/arda/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"proj"},
	Short:   "Manage projects (nested groupings of documents)",
	Long:    "Create, arrange, and delete projects and their document memberships",
}

var projectAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		parent, _ := cmd.Flags().GetInt("parent")
		path, _ := cmd.Flags().GetString("path")
		description, _ := cmd.Flags().GetString("description")

		record := map[string]any{
			"proj_text": args[0],
			"parent_id": parent,
		}
		if path != "" {
			record["path"] = path
		}
		if description != "" {
			record["description"] = description
		}
		return wire.DocumentAdapter().Add(ctx, fields.TableProjects, record)
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ProjectAdapter().List(context.Background())
	},
}

var projectTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the project hierarchy",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ProjectAdapter().Tree(context.Background())
	},
}

var projectPathCmd = &cobra.Command{
	Use:   "path [proj-id]",
	Short: "Print a project's full path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ignore, _ := cmd.Flags().GetInt("ignore")
		delim, _ := cmd.Flags().GetString("delim")
		projID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Path(ctx, projID, ignore, delim)
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [proj-id]",
	Short: "Delete a project, handing its children to its parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		children, _ := cmd.Flags().GetString("children")
		projID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Delete(ctx, projID, children)
	},
}

var projectMoveCmd = &cobra.Command{
	Use:   "move [proj-id] [new-parent-id]",
	Short: "Move a project under another (0 for top level)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		projID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		parentID, err := parseParentID(args[1])
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Move(ctx, projID, parentID)
	},
}

var projectMemberCmd = &cobra.Command{
	Use:   "member [add|remove] [doc-id] [proj-id]",
	Short: "Add a document to, or remove it from, a project",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ids, err := parseIDs(args[1:], "document/project")
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Member(ctx, ids[0], ids[1], args[0])
	},
}

var projectDocsCmd = &cobra.Command{
	Use:   "docs [proj-id...]",
	Short: "List the documents in projects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		cascade, _ := cmd.Flags().GetBool("cascade")
		projIDs, err := parseIDs(args, "project")
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Docs(ctx, projIDs, cascade)
	},
}

var projectNoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Per-project notes on documents",
}

var projectNoteSetCmd = &cobra.Command{
	Use:   "set [proj-id] [doc-id] [text]",
	Short: "Set the note a project keeps on a document",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ids, err := parseIDs(args[:2], "project/document")
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().SetNote(ctx, ids[0], ids[1], args[2])
	},
}

var projectNoteListCmd = &cobra.Command{
	Use:   "list [proj-id]",
	Short: "List a project's notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		projID, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		return wire.ProjectAdapter().Notes(ctx, projID)
	},
}

func init() {
	projectAddCmd.Flags().Int("parent", project.Root, "Parent project ID (0 for top level)")
	projectAddCmd.Flags().String("path", "", "Directory the project's .bib file is written to")
	projectAddCmd.Flags().String("description", "", "Project description")

	projectPathCmd.Flags().Int("ignore", 0, "Number of top-level ancestors to leave out")
	projectPathCmd.Flags().String("delim", "/", "Separator between names")

	projectDeleteCmd.Flags().String("children", project.ActionReassign, "What happens to sub-projects (reassign)")

	projectDocsCmd.Flags().Bool("cascade", false, "Include documents of sub-projects")

	projectNoteCmd.AddCommand(projectNoteSetCmd)
	projectNoteCmd.AddCommand(projectNoteListCmd)

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectTreeCmd)
	projectCmd.AddCommand(projectPathCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectMoveCmd)
	projectCmd.AddCommand(projectMemberCmd)
	projectCmd.AddCommand(projectDocsCmd)
	projectCmd.AddCommand(projectNoteCmd)
}

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	return projectCmd
}
