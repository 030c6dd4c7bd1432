package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/wire"
)

var exportCmd = &cobra.Command{
	Use:   "export [doc-id...]",
	Short: "Write documents as a BibTeX file",
	Long: `Write documents as BibTeX. Either list document ids with --out, or give
--project to rebuild that project's .bib file and its extra targets.

Examples:
  arda export 3 7 12 --out refs.bib --fields author,title,year
  arda export --project 2 --cascade`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		projID, _ := cmd.Flags().GetInt("project")
		cascade, _ := cmd.Flags().GetBool("cascade")
		out, _ := cmd.Flags().GetString("out")
		fieldList, _ := cmd.Flags().GetString("fields")

		if projID != 0 {
			if len(args) > 0 {
				return fmt.Errorf("--project cannot be combined with document ids")
			}
			return wire.ExportAdapter().ExportProject(ctx, projID, cascade)
		}

		docIDs, err := parseIDs(args, "document")
		if err != nil {
			return err
		}
		return wire.ExportAdapter().Write(ctx, docIDs, out, parseFieldList(fieldList))
	},
}

func init() {
	exportCmd.Flags().Int("project", 0, "Export a project instead of listed documents")
	exportCmd.Flags().Bool("cascade", false, "Include documents of sub-projects")
	exportCmd.Flags().StringP("out", "o", "", "Output file (relative to the export directory)")
	exportCmd.Flags().String("fields", "", "Comma-separated fields to include (default from config)")
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	return exportCmd
}
