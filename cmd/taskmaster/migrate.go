package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastygo/taskmaster/internal/config"
	pgInfra "github.com/fastygo/taskmaster/internal/infrastructure/postgres"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the PostgreSQL schema",
	}
	cmd.AddCommand(migrateDirectionCmd(a, pgInfra.Up, "Apply all pending migrations"))
	cmd.AddCommand(migrateDirectionCmd(a, pgInfra.Down, "Roll back all migrations"))
	return cmd
}

func migrateDirectionCmd(a *app, direction pgInfra.Direction, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database.Driver != config.DriverPostgres {
				return fmt.Errorf("migrations only apply to the %s driver, DATABASE_DRIVER is %q", config.DriverPostgres, a.cfg.Database.Driver)
			}
			return pgInfra.RunMigrations(a.cfg, direction, a.logger)
		},
	}
}
