package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/arda/internal/config"
	"github.com/example/arda/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize an ArDa library in the current directory",
		Long: `Initialize an ArDa library: write .arda/config.json and create the
database with every table and the field registry.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sample, _ := cmd.Flags().GetBool("sample")
			dbPath, _ := cmd.Flags().GetString("db")

			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg := config.Default(wd)
			if dbPath != "" {
				if !filepath.IsAbs(dbPath) {
					dbPath = filepath.Join(wd, dbPath)
				}
				cfg.DBPath = dbPath
			}

			fmt.Printf("Initializing ArDa library at %s\n", cfg.DBPath)

			database, err := db.Create(ctx, cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			if sample {
				if err := db.SeedFixtures(ctx, database); err != nil {
					return fmt.Errorf("failed to load sample records: %w", err)
				}
				fmt.Println("✓ Sample records loaded")
			}

			if err := config.SaveConfig(wd, cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Println("✓ Library initialized successfully")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  arda doc add title=\"My First Paper\" author=\"Doe, Jane\"")
			fmt.Println("  arda doc list")

			return nil
		},
	}
	cmd.Flags().Bool("sample", false, "Load a small set of sample records")
	cmd.Flags().String("db", "", "Database path (default .arda/arda.db)")
	return cmd
}
