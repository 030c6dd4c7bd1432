package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/ports/primary"
	"github.com/example/arda/internal/wire"
)

var dupCmd = &cobra.Command{
	Use:   "dup [key=value...]",
	Short: "Find documents that duplicate another",
	Long: `Find documents whose chosen fields equal the given values. Use --doc to
take the values from an existing document (which is left out of the result).

Examples:
  arda dup --doc 12
  arda dup --fields title,year title="Deep Learning" year=2015`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		docID, _ := cmd.Flags().GetInt("doc")
		fieldList, _ := cmd.Flags().GetString("fields")

		values, err := parseAssignments(args)
		if err != nil {
			return err
		}
		if docID == 0 && len(values) == 0 {
			return fmt.Errorf("give --doc or at least one key=value")
		}
		return wire.MergeAdapter().FindDuplicates(ctx, primary.DuplicateQuery{
			DocID:  docID,
			Fields: parseFieldList(fieldList),
			Values: values,
		})
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge [doc-id] [doc-id]",
	Short: "Merge two documents into one",
	Long: `Merge two documents. The --primary document survives; the other is
deleted after its chosen rows are moved over.

Examples:
  arda merge 4 9 --primary 4 --choose journal=Nature --source author_lasts=9
  arda merge 4 9 --primary 9 --source file_paths=4 --union-projects`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		primaryID, _ := cmd.Flags().GetInt("primary")
		choose, _ := cmd.Flags().GetStringArray("choose")
		sources, _ := cmd.Flags().GetStringArray("source")
		union, _ := cmd.Flags().GetBool("union-projects")

		ids, err := parseIDs(args, "document")
		if err != nil {
			return err
		}
		if primaryID == 0 {
			primaryID = ids[0]
		}

		choices, err := parseAssignments(choose)
		if err != nil {
			return err
		}
		fieldSources, err := parseSources(sources)
		if err != nil {
			return err
		}

		return wire.MergeAdapter().Merge(ctx, primary.MergeRequest{
			DocIDs:        [2]int{ids[0], ids[1]},
			PrimaryID:     primaryID,
			FieldChoices:  choices,
			FieldSources:  fieldSources,
			UnionProjects: union,
		})
	},
}

// parseSources parses group=doc-id pairs.
func parseSources(args []string) (map[string]int, error) {
	out := make(map[string]int, len(args))
	for _, a := range args {
		group, id, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid source '%s': expected group=doc-id", a)
		}
		docID, err := parseID(id, "document")
		if err != nil {
			return nil, err
		}
		out[strings.TrimSpace(group)] = docID
	}
	return out, nil
}

func init() {
	dupCmd.Flags().Int("doc", 0, "Document whose values are matched")
	dupCmd.Flags().String("fields", "", "Comma-separated fields to compare (default from config)")

	mergeCmd.Flags().Int("primary", 0, "Document that survives (default the first id)")
	mergeCmd.Flags().StringArray("choose", nil, "Field value for the survivor, as column=value (repeatable)")
	mergeCmd.Flags().StringArray("source", nil, "Take a group's rows from a document, as group=doc-id (author_lasts, editor, file_paths)")
	mergeCmd.Flags().Bool("union-projects", false, "Keep the merged-away document's project memberships")
}

// DupCmd returns the dup command
func DupCmd() *cobra.Command {
	return dupCmd
}

// MergeCmd returns the merge command
func MergeCmd() *cobra.Command {
	return mergeCmd
}
