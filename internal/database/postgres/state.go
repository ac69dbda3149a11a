package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/repository"
)

// StateRepository stores each progression record as one JSONB row
type StateRepository struct {
	db *pgxpool.Pool
}

// NewStateRepository creates a new postgres-backed StateRepository
func NewStateRepository(db *pgxpool.Pool) *StateRepository {
	return &StateRepository{db: db}
}

var _ repository.StateRepository = (*StateRepository)(nil)

// LoadState returns the stored record of identity
func (r *StateRepository) LoadState(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	if err := repository.ValidateIdentity(identity); err != nil {
		return nil, err
	}

	var (
		revision int64
		data     []byte
	)
	err := r.db.QueryRow(ctx, SQLSelectState, identity).Scan(&revision, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadState, err)
	}
	return repository.DecodeStoredState(data, revision)
}

// SaveState upserts the record when its revision is newer than the stored one
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
		updatedAt = time.Now().UTC()
	}

	tag, err := r.db.Exec(ctx, SQLUpsertState, identity, state.Revision, state.SchemaVersion, data, updatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveState, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s revision %d", domain.ErrStaleRevision, identity, state.Revision)
	}
	return nil
}

// DeleteState removes the record of identity
func (r *StateRepository) DeleteState(ctx context.Context, identity string) error {
	if _, err := r.db.Exec(ctx, SQLDeleteState, identity); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteState, err)
	}
	return nil
}

// ListIdentities returns every stored identity in order
func (r *StateRepository) ListIdentities(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, SQLListIdentities)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToList, err)
	}
	identities, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToList, err)
	}
	return identities, nil
}

func (r *StateRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close is a no-op; the pool is owned by the caller
func (r *StateRepository) Close() error {
	return nil
}
