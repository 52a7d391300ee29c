package main

import (
	"database/sql"
	"fmt"

	"github.com/hairizuan-noorazman/user-admin/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands for the local API",
	}

	cmd.PersistentFlags().StringVarP(&serverConfigFile, "config", "c", "", "server config file path")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(sqlDB *sql.DB, driver string) error {
				if err := database.RunMigrations(sqlDB, driver); err != nil {
					return fmt.Errorf("failed to run migrations: %w", err)
				}
				printMessage(cmd.OutOrStdout(), "Migrations applied successfully")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(sqlDB *sql.DB, driver string) error {
				if err := database.RollbackMigration(sqlDB, driver); err != nil {
					return fmt.Errorf("failed to rollback migration: %w", err)
				}
				printMessage(cmd.OutOrStdout(), "Migration rolled back successfully")
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(sqlDB *sql.DB, driver string) error {
				version, dirty, err := database.MigrationVersion(sqlDB, driver)
				if err != nil {
					return fmt.Errorf("failed to read migration version: %w", err)
				}
				msg := fmt.Sprintf("Version: %d", version)
				if dirty {
					msg += " (dirty)"
				}
				printMessage(cmd.OutOrStdout(), msg)
				return nil
			})
		},
	})

	return cmd
}

func withDatabase(fn func(sqlDB *sql.DB, driver string) error) error {
	sc, err := LoadServerConfig(serverConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(sc.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	return fn(sqlDB, sc.Database.Driver)
}
