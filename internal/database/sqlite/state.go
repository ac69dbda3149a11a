// Package sqlite provides a single-file progression store built on modernc.org/sqlite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/osse101/zephyr/internal/database"
	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/repository"
)

const (
	sqlSelectState = `SELECT revision, state FROM progression_states WHERE identity = ?`

	sqlUpsertState = `
		INSERT INTO progression_states (identity, revision, schema_version, state, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (identity) DO UPDATE
		SET revision = excluded.revision,
		    schema_version = excluded.schema_version,
		    state = excluded.state,
		    updated_at = excluded.updated_at
		WHERE progression_states.revision < excluded.revision`

	sqlDeleteState    = `DELETE FROM progression_states WHERE identity = ?`
	sqlListIdentities = `SELECT identity FROM progression_states ORDER BY identity`

	dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
)

// StateRepository stores progression records in SQLite
type StateRepository struct {
	db *sql.DB
}

var _ repository.StateRepository = (*StateRepository)(nil)

// Open opens the database at path, creating parent directories, and applies migrations
func Open(ctx context.Context, path string) (*StateRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cleanPath+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer keeps SQLITE_BUSY out of the upsert path
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	migrator, err := database.NewSQLiteMigrator(db)
	if err == nil {
		err = migrator.Up(ctx)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &StateRepository{db: db}, nil
}

func (r *StateRepository) LoadState(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	if err := repository.ValidateIdentity(identity); err != nil {
		return nil, err
	}

	var (
		revision int64
		data     string
	)
	err := r.db.QueryRowContext(ctx, sqlSelectState, identity).Scan(&revision, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("load progression state: %w", err)
	}
	return repository.DecodeStoredState([]byte(data), revision)
}

func (r *StateRepository) SaveState(ctx context.Context, identity string, state *domain.ProgressionState) error {
	if err := repository.ValidateIdentity(identity); err != nil {
		return err
	}
	data, err := repository.EncodeState(state)
	if err != nil {
		return err
	}

	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, sqlUpsertState,
		identity, state.Revision, state.SchemaVersion, string(data), updatedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save progression state: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save progression state: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s revision %d", domain.ErrStaleRevision, identity, state.Revision)
	}
	return nil
}

func (r *StateRepository) DeleteState(ctx context.Context, identity string) error {
	if _, err := r.db.ExecContext(ctx, sqlDeleteState, identity); err != nil {
		return fmt.Errorf("delete progression state: %w", err)
	}
	return nil
}

func (r *StateRepository) ListIdentities(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, sqlListIdentities)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var identities []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list identities: %w", err)
		}
		identities = append(identities, id)
	}
	return identities, rows.Err()
}

func (r *StateRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the SQLite handle
func (r *StateRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
