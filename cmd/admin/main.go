package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/skyboxlabs/skybox/internal/config"
	"github.com/skyboxlabs/skybox/internal/db"
	"github.com/skyboxlabs/skybox/internal/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "admin",
		Short: "Operational tools for skybox",
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(secretCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				return db.RunMigrations(database.DB, cfg.DBDriver)
			})
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(cfg *config.Config, database *sqlx.DB) error {
				return db.MigrateDown(database.DB, cfg.DBDriver)
			})
		},
	})

	return migrate
}

func secretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Generate a random PRIVATE_TOKEN value",
		RunE: func(cmd *cobra.Command, args []string) error {
			buf := make([]byte, 32)
			if _, err := rand.Read(buf); err != nil {
				return fmt.Errorf("failed to read random bytes: %w", err)
			}
			fmt.Println(base64.RawURLEncoding.EncodeToString(buf))
			return nil
		},
	}
}

func withDB(fn func(*config.Config, *sqlx.DB) error) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	return fn(cfg, database)
}
