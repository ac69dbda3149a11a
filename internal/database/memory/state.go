// Package memory keeps progression records in process memory
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/zephyr/internal/domain"
	"github.com/osse101/zephyr/internal/repository"
)

type record struct {
	revision int64
	data     []byte
}

// StateRepository stores encoded records so callers never share memory with the store
type StateRepository struct {
	mu      sync.RWMutex
	records map[string]record
}

var _ repository.StateRepository = (*StateRepository)(nil)

// NewStateRepository creates an empty in-memory repository
func NewStateRepository() *StateRepository {
	return &StateRepository{records: make(map[string]record)}
}

func (r *StateRepository) LoadState(_ context.Context, identity string) (*domain.ProgressionState, error) {
	if err := repository.ValidateIdentity(identity); err != nil {
		return nil, err
	}
	r.mu.RLock()
	rec, ok := r.records[identity]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return repository.DecodeStoredState(rec.data, rec.revision)
}

func (r *StateRepository) SaveState(_ context.Context, identity string, state *domain.ProgressionState) error {
	if err := repository.ValidateIdentity(identity); err != nil {
		return err
	}
	data, err := repository.EncodeState(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.records[identity]; ok && current.revision >= state.Revision {
		return fmt.Errorf("%w: %s revision %d (stored %d)", domain.ErrStaleRevision, identity, state.Revision, current.revision)
	}
	r.records[identity] = record{revision: state.Revision, data: data}
	return nil
}

func (r *StateRepository) DeleteState(_ context.Context, identity string) error {
	r.mu.Lock()
	delete(r.records, identity)
	r.mu.Unlock()
	return nil
}

func (r *StateRepository) ListIdentities(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *StateRepository) Ping(context.Context) error { return nil }

func (r *StateRepository) Close() error { return nil }
