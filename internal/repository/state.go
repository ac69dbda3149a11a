package repository

import (
	"context"

	"github.com/osse101/zephyr/internal/domain"
)

// StateRepository persists one progression record per student identity.
// Every backend stores the full record and keeps a write only when its
// revision is newer than the stored one.
type StateRepository interface {
	// LoadState returns domain.ErrStateNotFound when nothing is stored for identity
	// and wraps domain.ErrCorruptState when the stored record cannot be decoded
	LoadState(ctx context.Context, identity string) (*domain.ProgressionState, error)

	// SaveState returns domain.ErrStaleRevision when the stored revision is not older
	SaveState(ctx context.Context, identity string, state *domain.ProgressionState) error

	DeleteState(ctx context.Context, identity string) error
	ListIdentities(ctx context.Context) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}
