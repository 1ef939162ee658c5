package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelworks/reel-api/internal/database"
	"github.com/reelworks/reel-api/internal/models"
	"github.com/reelworks/reel-api/pkg/config"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the database schema for the Reel Revision API.

Available subcommands:
  up      - Apply the current schema with GORM auto-migration
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply the current schema",
	Long: `Bring the database schema up to date using GORM auto-migration.

Creates or alters the reel, version, transcript, and job tables as needed.
Existing data is preserved.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows which tables exist
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show schema status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("Schema is up to date")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	fmt.Println("Database Schema Status")
	fmt.Println(strings.Repeat("=", 40))

	tables := []interface{}{
		&models.Reel{},
		&models.ReelVersion{},
		&models.Transcript{},
		&models.ReprocessJob{},
	}
	for _, table := range tables {
		stmt := db.DB.Model(table).Statement
		if err := stmt.Parse(table); err != nil {
			return fmt.Errorf("parsing model: %w", err)
		}
		state := "missing"
		if db.DB.Migrator().HasTable(table) {
			state = "present"
		}
		fmt.Printf("  %-20s %s\n", stmt.Schema.Table, state)
	}

	return nil
}
