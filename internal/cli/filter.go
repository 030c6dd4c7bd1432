package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/wire"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Manage saved document filters",
}

var filterAddCmd = &cobra.Command{
	Use:   "add [name] [field] [value]",
	Short: "Save a filter matching documents whose field equals value",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.FilterAdapter().Create(context.Background(), args[0], args[1], args[2])
	},
}

var filterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.FilterAdapter().List(context.Background())
	},
}

var filterDeleteCmd = &cobra.Command{
	Use:   "delete [filter-id]",
	Short: "Delete a saved filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filterID, err := parseID(args[0], "filter")
		if err != nil {
			return err
		}
		return wire.FilterAdapter().Delete(context.Background(), filterID)
	},
}

func init() {
	filterCmd.AddCommand(filterAddCmd)
	filterCmd.AddCommand(filterListCmd)
	filterCmd.AddCommand(filterDeleteCmd)
}

// FilterCmd returns the filter command
func FilterCmd() *cobra.Command {
	return filterCmd
}
