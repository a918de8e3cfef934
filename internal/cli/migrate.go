package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/rent-ledger/internal/config"
	"github.com/evcraddock/rent-ledger/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|version>",
		Short:     "Manage the database schema",
		Long:      "Apply, revert or report PostgreSQL schema migrations. SQLite databases are migrated whenever they are opened, so only 'up' applies to them.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(db.MigrateUp), string(db.MigrateDown), string(db.MigrateVersion)},
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := flagDB
			if dsn == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dsn = cfg.DSN()
			}
			return runMigrate(cmd, dsn, db.MigrateCommand(args[0]))
		},
	}
}

func runMigrate(cmd *cobra.Command, dsn string, command db.MigrateCommand) error {
	w := cmd.OutOrStdout()

	if !db.IsPostgresDSN(dsn) {
		if command != db.MigrateUp {
			return fmt.Errorf("migrate %s requires a PostgreSQL database; SQLite schemas are migrated on open", command)
		}
		database, err := db.Open(dsn)
		if err != nil {
			return err
		}
		closeDB(database)
		return output(w, map[string]string{"database": dsn, "status": "up to date"}, func() error {
			_, err := fmt.Fprintf(w, "SQLite schema at %s is up to date.\n", dsn)
			return err
		})
	}

	status, err := db.MigratePostgres(dsn, command)
	if err != nil {
		return err
	}
	return output(w, status, func() error {
		dirty := ""
		if status.Dirty {
			dirty = " (dirty)"
		}
		_, err := fmt.Fprintf(w, "Schema version: %d%s\n", status.Version, dirty)
		return err
	})
}
