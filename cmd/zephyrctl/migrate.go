package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/osse101/zephyr/internal/bootstrap"
	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage schema migrations of the SQL backends (up, down, status)",
	}
	cmd.AddCommand(
		migrateSubCmd("up", "Apply every pending migration", func(ctx context.Context, m *database.Migrator) error {
			return m.Up(ctx)
		}),
		migrateSubCmd("down", "Roll back the most recent migration", func(ctx context.Context, m *database.Migrator) error {
			return m.Down(ctx)
		}),
		migrateSubCmd("status", "Print the schema version", func(ctx context.Context, m *database.Migrator) error {
			return nil
		}),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(context.Context, *database.Migrator) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			migrator, closeFn, err := openMigrator(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := run(ctx, migrator); err != nil {
				return err
			}
			return printMigrationStatus(ctx, cmd, cfg.StoreBackend, migrator)
		},
	}
}

func openMigrator(ctx context.Context, cfg *config.Config) (*database.Migrator, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, bootstrap.PoolOptions(cfg))
		if err != nil {
			return nil, nil, err
		}
		m, err := database.NewPostgresMigrator(pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return m, pool.Close, nil

	case config.BackendSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		m, err := database.NewSQLiteMigrator(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return m, func() { _ = db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("store backend %q has no schema to migrate", cfg.StoreBackend)
}

func printMigrationStatus(ctx context.Context, cmd *cobra.Command, backend string, m *database.Migrator) error {
	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if pending {
		printWarning(out, "%s schema at version %d, migrations pending", backend, version)
		return nil
	}
	printSuccess(out, "%s schema at version %d, up to date", backend, version)
	return nil
}
