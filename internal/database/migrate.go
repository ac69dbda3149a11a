package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/zephyr/internal/logger"
	"github.com/osse101/zephyr/migrations"
)

// Migrator applies the embedded goose migrations of one SQL backend
type Migrator struct {
	provider *goose.Provider
}

// NewMigrator builds a migrator for db using the migrations in fsys
func NewMigrator(dialect goose.Dialect, db *sql.DB, fsys fs.FS) (*Migrator, error) {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateMigrator, err)
	}
	return &Migrator{provider: provider}, nil
}

// NewPostgresMigrator wraps a pgx pool for the postgres migrations
func NewPostgresMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	return NewMigrator(goose.DialectPostgres, stdlib.OpenDBFromPool(pool), migrations.Postgres())
}

// NewSQLiteMigrator uses db for the sqlite migrations
func NewSQLiteMigrator(db *sql.DB) (*Migrator, error) {
	return NewMigrator(goose.DialectSQLite3, db, migrations.SQLite())
}

// Up applies every pending migration
func (m *Migrator) Up(ctx context.Context) error {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	log := logger.FromContext(ctx)
	if len(results) == 0 {
		log.Debug(LogMsgSchemaUpToDate)
	}
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// Down rolls back the most recent migration
func (m *Migrator) Down(ctx context.Context) error {
	if _, err := m.provider.Down(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return nil
}

// Version returns the current schema version
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	v, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToReadVersion, err)
	}
	return v, nil
}

// Pending reports whether migrations remain to be applied
func (m *Migrator) Pending(ctx context.Context) (bool, error) {
	return m.provider.HasPending(ctx)
}
