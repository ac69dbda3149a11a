package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/zephyr/internal/domain"
)

func TestStateRepository_RoundTripIsolated(t *testing.T) {
	repo := NewStateRepository()
	ctx := context.Background()

	s := domain.DefaultState()
	s.Revision = 1
	s.XP = 10
	require.NoError(t, repo.SaveState(ctx, "anna", s))

	// Mutating the saved value must not leak into the store
	s.XP = 9999

	got, err := repo.LoadState(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, 10, got.XP)

	got.XP = 5
	again, err := repo.LoadState(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, 10, again.XP)
}

func TestStateRepository_Guards(t *testing.T) {
	repo := NewStateRepository()
	ctx := context.Background()

	_, err := repo.LoadState(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	s := domain.DefaultState()
	s.Revision = 3
	require.NoError(t, repo.SaveState(ctx, "anna", s))

	older := domain.DefaultState()
	older.Revision = 2
	assert.ErrorIs(t, repo.SaveState(ctx, "anna", older), domain.ErrStaleRevision)
	assert.ErrorIs(t, repo.SaveState(ctx, "", s), domain.ErrInvalidIdentity)

	ids, err := repo.ListIdentities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"anna"}, ids)

	require.NoError(t, repo.DeleteState(ctx, "anna"))
	_, err = repo.LoadState(ctx, "anna")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}
