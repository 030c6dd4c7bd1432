package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/core/fields"
	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/wire"
)

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage documents (bibliographic references)",
	Long:  "Add, show, list, update, and delete documents and their attached files",
}

var docAddCmd = &cobra.Command{
	Use:   "add key=value...",
	Short: "Add a record",
	Long: `Add a record to a table. Keys may be storage names (author_lasts) or
display headers ("Authors"). Repeat author= or editor= to give several names.

Examples:
  arda doc add title="Deep Learning" author="LeCun, Yann" author="Bengio, Yoshua" year=2015
  arda doc add --table Doc_Paths doc_id=3 full_path=/papers/lecun.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		table, _ := cmd.Flags().GetString("table")

		record, err := parseAssignments(args)
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().Add(ctx, table, record)
	},
}

var docShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docID, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().Show(ctx, docID)
	},
}

var docListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		search, _ := cmd.Flags().GetString("search")
		searchFields, _ := cmd.Flags().GetString("fields")
		projects, _ := cmd.Flags().GetIntSlice("project")
		cascade, _ := cmd.Flags().GetBool("cascade")
		filterID, _ := cmd.Flags().GetInt("filter")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.DocumentAdapter().List(ctx, primary.DocumentFilters{
			ProjectIDs:   projects,
			Cascade:      cascade,
			Search:       search,
			SearchFields: parseFieldList(searchFields),
			FilterID:     filterID,
			Limit:        limit,
		})
	},
}

var docUpdateCmd = &cobra.Command{
	Use:   "update [doc-id] column=value",
	Short: "Set one column on a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docID, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		column, value, err := parseSingleAssignment(args[1])
		if err != nil {
			return err
		}
		cond := map[string]any{"doc_id": docID}
		return wire.DocumentAdapter().Update(ctx, fields.TableDocuments, cond, column, value)
	},
}

var docDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and every row that references it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docID, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().Delete(ctx, docID)
	},
}

var docPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Attach or detach files",
}

var docPathAddCmd = &cobra.Command{
	Use:   "add [doc-id] [path]",
	Short: "Attach a file to a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docID, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().AddPath(ctx, docID, args[1])
	},
}

var docPathRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id] [path]",
	Short: "Detach a file from a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docID, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().RemovePath(ctx, docID, args[1])
	},
}

func init() {
	docAddCmd.Flags().String("table", fields.TableDocuments, "Table to insert into")

	docListCmd.Flags().String("search", "", "Case-insensitive substring to look for")
	docListCmd.Flags().String("fields", "", "Comma-separated columns to search (default title,author_lasts)")
	docListCmd.Flags().IntSlice("project", nil, "Only documents in these projects")
	docListCmd.Flags().Bool("cascade", false, "Include documents of sub-projects")
	docListCmd.Flags().Int("filter", 0, "Apply a saved filter")
	docListCmd.Flags().Int("limit", 0, "Maximum number of documents (0 for all)")

	docPathCmd.AddCommand(docPathAddCmd)
	docPathCmd.AddCommand(docPathRemoveCmd)

	docCmd.AddCommand(docAddCmd)
	docCmd.AddCommand(docShowCmd)
	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docUpdateCmd)
	docCmd.AddCommand(docDeleteCmd)
	docCmd.AddCommand(docPathCmd)
}

// DocCmd returns the doc command
func DocCmd() *cobra.Command {
	return docCmd
}

var authorCmd = &cobra.Command{
	Use:   "author",
	Short: "Manage document contributors",
}

var authorSetCmd = &cobra.Command{
	Use:   "set [doc-id] [name...]",
	Short: "Replace a document's authors (or editors)",
	Long: `Replace the authors of a document, in the order given. Names may be
"Last, First" or "First Last". With no names the role is cleared.

Examples:
  arda author set 12 "Knuth, Donald" "Lovelace, Ada"
  arda author set 12 --editors "Jane Doe"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		editors, _ := cmd.Flags().GetBool("editors")
		docID, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().SetAuthors(ctx, docID, args[1:], editors)
	},
}

func init() {
	authorSetCmd.Flags().Bool("editors", false, "Set editors instead of authors")
	authorCmd.AddCommand(authorSetCmd)
}

// AuthorCmd returns the author command
func AuthorCmd() *cobra.Command {
	return authorCmd
}
