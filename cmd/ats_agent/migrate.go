package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-optimizer/internal/db"
	"github.com/jonathan/ats-optimizer/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the PostgreSQL schema",
	Long: `Connects to DATABASE_URL and applies the schema for resumes, jobs,
scores, recommendations, runs and artifacts. Safe to run repeatedly.
The serve command applies the same schema on startup.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	if settings.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, settings.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	logger.Info().Msg("database schema is up to date")
	fmt.Fprintln(cmd.OutOrStdout(), "✓ migrations applied")
	return nil
}
