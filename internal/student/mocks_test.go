package student

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/zephyr/internal/domain"
)

// MockRepository is a testify mock of repository.StateRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadState(ctx context.Context, identity string) (*domain.ProgressionState, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProgressionState), args.Error(1)
}

func (m *MockRepository) SaveState(ctx context.Context, identity string, state *domain.ProgressionState) error {
	args := m.Called(ctx, identity, state)
	return args.Error(0)
}

func (m *MockRepository) DeleteState(ctx context.Context, identity string) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockRepository) ListIdentities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
