package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/talent-intake/db/migrations"
	"github.com/frahmantamala/talent-intake/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files embedded from db/migrations",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "read migrations from this directory instead of the embedded set")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.LoggerWrapper()

	db, err := goose.OpenDBWithDriver(cfg.Database.Driver, cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("goose: failed to open DB %s: %w", cfg.Database.RedactedDSN(), err)
	}
	defer db.Close()

	goose.SetTableName("schema_migrations")

	dir := "."
	if migrateDir != "" {
		if _, err := os.Stat(migrateDir); err != nil {
			return fmt.Errorf("goose: migrations dir: %w", err)
		}
		goose.SetBaseFS(nil)
		dir = migrateDir
	} else {
		goose.SetBaseFS(migrations.Migrations)
	}

	command := "up"
	if migrateRollback {
		command = "down"
	}

	lg.Info("running migrations", "command", command, "database", cfg.Database.RedactedDSN())
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}

	lg.Info("migrations finished", "command", command)
	return nil
}
