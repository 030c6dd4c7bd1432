package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/arda/internal/adapters/cli"
	"github.com/example/arda/internal/wire"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect and edit raw tables",
}

var tableShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print every row of a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.DocumentAdapter().Table(context.Background(), args[0])
	},
}

var tableUpdateCmd = &cobra.Command{
	Use:   "update [name] column=value",
	Short: "Set one column on every row matching --where",
	Long: `Set one column on the rows of a table that match every --where pair.

Examples:
  arda table update Documents read=1 --where journal=Nature
  arda table update Proj_Notes notes="check fig. 2" --where proj_id=3 --where doc_id=8`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		where, _ := cmd.Flags().GetStringArray("where")

		column, value, err := parseSingleAssignment(args[1])
		if err != nil {
			return err
		}
		cond, err := parseAssignments(where)
		if err != nil {
			return err
		}
		return wire.DocumentAdapter().Update(ctx, args[0], cond, column, value)
	},
}

var fieldCmd = &cobra.Command{
	Use:   "field [table]",
	Short: "List the columns of every table, or one table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := ""
		if len(args) == 1 {
			table = args[0]
		}
		return cliadapter.Fields(os.Stdout, table)
	},
}

func init() {
	tableUpdateCmd.Flags().StringArray("where", nil, "Row condition as column=value (repeatable)")

	tableCmd.AddCommand(tableShowCmd)
	tableCmd.AddCommand(tableUpdateCmd)
}

// TableCmd returns the table command
func TableCmd() *cobra.Command {
	return tableCmd
}

// FieldCmd returns the field command
func FieldCmd() *cobra.Command {
	return fieldCmd
}
