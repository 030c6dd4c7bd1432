package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/cli"
	"github.com/example/arda/internal/version"
	"github.com/example/arda/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "arda",
		Short:   "ArDa - personal bibliographic reference manager",
		Version: version.String(),
		Long: `ArDa keeps a library of documents (papers, books, reports) in a local
SQLite database: their authors, attached files, and the projects they
belong to. It finds and merges duplicates and writes BibTeX.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.InitCmd())

	// Library
	rootCmd.AddCommand(cli.DocCmd())
	rootCmd.AddCommand(cli.AuthorCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.FilterCmd())

	// Maintenance
	rootCmd.AddCommand(cli.DupCmd())
	rootCmd.AddCommand(cli.MergeCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.TableCmd())
	rootCmd.AddCommand(cli.FieldCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
