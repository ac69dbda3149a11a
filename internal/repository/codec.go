package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/osse101/zephyr/internal/domain"
)

// MaxIdentityLength bounds identity keys in every backend
const MaxIdentityLength = 128

// ValidateIdentity rejects identities no backend can key on
func ValidateIdentity(identity string) error {
	trimmed := strings.TrimSpace(identity)
	if trimmed == "" || trimmed != identity || len(identity) > MaxIdentityLength {
		return fmt.Errorf("%w: %q", domain.ErrInvalidIdentity, identity)
	}
	return nil
}

// EncodeState serializes a record for storage
func EncodeState(state *domain.ProgressionState) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil state", domain.ErrCorruptState)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progression state: %w", err)
	}
	return data, nil
}

// DecodeState parses a stored record and fills any missing field with its default
func DecodeState(data []byte) (*domain.ProgressionState, error) {
	state := &domain.ProgressionState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	state.Normalize()
	return state, nil
}

// DecodeStoredState decodes a record read together with its stored revision.
// The stored revision wins over the one inside the document; an undecodable
// document yields a domain.CorruptStateError carrying that revision.
func DecodeStoredState(data []byte, revision int64) (*domain.ProgressionState, error) {
	state, err := DecodeState(data)
	if err != nil {
		return nil, domain.CorruptStateError{Revision: revision, Cause: err}
	}
	state.Revision = revision
	return state, nil
}
